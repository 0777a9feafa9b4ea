package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"EraRealms/internal/gate/app"
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/shared/transport"
)

// LoginClient 按 login 服务的 HTTP 协议访问账号接口。
// 回包统一是 {code,message,data}：code 为 0 取 data，
// 业务拒绝映射成 reason 化的 BizRejectedError，5xx 段视作上游故障。
type LoginClient struct {
	base string
	hc   *nethttp.Client
}

func NewLoginClient(baseURL string) *LoginClient {
	return &LoginClient{
		base: baseURL,
		hc:   &nethttp.Client{Timeout: 5 * time.Second},
	}
}

var _ app.AccountClient = (*LoginClient)(nil)

func (c *LoginClient) Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error) {
	data, err := c.call(ctx, nethttp.MethodPost, "/account/login", "", req)
	if err != nil {
		return nil, err
	}
	var resp model.LoginResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamBadResponse).WithCause(err)
	}
	return &resp, nil
}

func (c *LoginClient) Register(ctx context.Context, req model.RegisterReq) error {
	_, err := c.call(ctx, nethttp.MethodPost, "/account/register", "", req)
	return err
}

func (c *LoginClient) Profile(ctx context.Context, session string) (*model.Profile, error) {
	data, err := c.call(ctx, nethttp.MethodGet, "/account/profile", session, nil)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamBadResponse).WithCause(err)
	}
	return &p, nil
}

func (c *LoginClient) SaveProfile(ctx context.Context, session string, p model.Profile) error {
	_, err := c.call(ctx, nethttp.MethodPost, "/account/profile", session, p)
	return err
}

func (c *LoginClient) BindGame(ctx context.Context, session string, gameId, empireId int64) error {
	_, err := c.call(ctx, nethttp.MethodPost, "/account/bindgame", session, model.BindGameReq{GameId: gameId, EmpireId: empireId})
	return err
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *LoginClient) call(ctx context.Context, method, path, session string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamInternal).WithCause(err)
		}
		reader = bytes.NewReader(buf)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamInternal).WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if session != "" {
		httpReq.Header.Set("Authorization", "Bearer "+session)
	}

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
			WithCause(fmt.Errorf("login server status %d", httpResp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(httpResp.Body).Decode(&env); err != nil {
		return nil, app.ErrInternalServer.WithReason(app.ReasonUpstreamBadResponse).WithCause(err)
	}
	if env.Code != transport.OK {
		return nil, bizError(env.Code, env.Message)
	}
	return env.Data, nil
}

// bizError 把 login 服务的业务码还原成 reason，后面统一由 handler 映射回
// 客户端业务码。看着绕，但 reason 是跨服务的稳定协议，客户端码不是。
func bizError(code int, msg string) error {
	switch {
	case code == transport.PwdIncorrect:
		return app.NewBizRejectedError(app.ReasonAccountLoginInvalidCredentials.Code, msg)
	case code == transport.UserExist:
		return app.NewBizRejectedError(app.ReasonAccountRegisterUserExist.Code, msg)
	case code == transport.RoleNotExist:
		return app.NewBizRejectedError(app.ReasonAccountProfileNotExist.Code, msg)
	case code == transport.InvalidParam:
		return app.NewBizRejectedError(app.ReasonAccountBadRequest.Code, msg)
	case code >= transport.SystemError:
		return app.ErrInternalServer.WithReason(app.ReasonUpstreamInternal)
	default:
		return app.NewBizRejectedError(app.ReasonAccountBadRequest.Code, msg)
	}
}
