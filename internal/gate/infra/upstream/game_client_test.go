package upstream

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"EraRealms/internal/shared/actor/messages"
	"EraRealms/internal/shared/transport"
)

func Test对局调用_按op拼路径且回包原样带回(t *testing.T) {
	var gotPath string
	var gotMsg messages.GApplyAction
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotMsg)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    transport.Insufficient,
			"message": "金币不足",
		})
	}))
	defer srv.Close()

	c := NewGameClient(srv.URL)
	msg := &messages.GApplyAction{
		GameBaseMessage: messages.GameBaseMessage{GameId: 3, EmpireId: 9},
		Action:          "farm",
		Turns:           2,
	}
	result, err := c.Call(context.Background(), "action", msg)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if gotPath != "/game/action" {
		t.Fatalf("路径不符: %s", gotPath)
	}
	if gotMsg.GameId != 3 || gotMsg.EmpireId != 9 || gotMsg.Action != "farm" || gotMsg.Turns != 2 {
		t.Fatalf("消息体不符: %+v", gotMsg)
	}
	if result.Code != transport.Insufficient || result.Message != "金币不足" {
		t.Fatalf("回包未透传: %+v", result)
	}
}

func Test对局调用_成功时带回数据(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": transport.OK,
			"data": messages.EmpireSummary{Id: 42, Name: "wei"},
		})
	}))
	defer srv.Close()

	c := NewGameClient(srv.URL)
	result, err := c.Call(context.Background(), "join", &messages.GJoinGame{
		GameBaseMessage: messages.GameBaseMessage{GameId: 3},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !result.OK() {
		t.Fatalf("期望成功: %+v", result)
	}
	var summary messages.EmpireSummary
	if err := json.Unmarshal(result.Data, &summary); err != nil || summary.Id != 42 {
		t.Fatalf("数据带回不符: %v %+v", err, summary)
	}
}
