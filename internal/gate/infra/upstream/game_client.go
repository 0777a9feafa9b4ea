package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"time"

	"EraRealms/internal/gate/app"
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/shared/actor/messages"
)

// GameClient 把对局操作转成对 game 服务的 HTTP 调用。
// 业务码不在这里解释：对局回包（包括拒绝）原样带回给 gate 透传，
// 只有传输层故障才返回 error。
type GameClient struct {
	base string
	hc   *nethttp.Client
}

func NewGameClient(baseURL string) *GameClient {
	return &GameClient{
		base: baseURL,
		// 对局结算在 actor 消息流里串行排队，超时给得比账号接口宽。
		hc: &nethttp.Client{Timeout: 10 * time.Second},
	}
}

var _ app.GameClient = (*GameClient)(nil)

func (c *GameClient) Call(ctx context.Context, op string, msg messages.GameMessage) (*model.GameResult, error) {
	buf, err := json.Marshal(msg)
	if err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamInternal).WithCause(err)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, c.base+"/game/"+op, bytes.NewReader(buf))
	if err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamInternal).WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, app.WrapTransportErr(err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode != nethttp.StatusOK {
		return nil, app.ErrInternalServer.
			WithReason(app.ReasonUpstreamBadResponse).
			WithCause(fmt.Errorf("game server status %d", httpResp.StatusCode))
	}

	var result model.GameResult
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamBadResponse).WithCause(err)
	}
	return &result, nil
}
