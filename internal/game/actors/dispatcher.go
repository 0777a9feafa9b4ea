package actors

import (
	"reflect"

	"EraRealms/internal/shared/actor/messages"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleJoinGame)
	register(d, GH.HandleGameStatus)
	register(d, GH.HandleEmpireStatus)
	register(d, GH.HandlePrices)
	register(d, GH.HandleApplyAction)
	register(d, GH.HandleTransactMarket)
	register(d, GH.HandleTransactBank)
	register(d, GH.HandleCastSpell)
	register(d, GH.HandleAttack)
	register(d, GH.HandleDraftAdvisor)
	register(d, GH.HandleDismissAdvisor)
	register(d, GH.HandleRaiseMastery)
	register(d, GH.HandleAdoptPolicy)
	register(d, GH.HandleEndPhase)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, g *GameActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, g *GameActor, req messages.GameMessage) {
	if req == nil {
		ctx.Respond(failReply("nil req"))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(failReply("no handler for request body"))
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(failReply("request body type mismatch"))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(g),
		reflect.ValueOf(req),
	})
}
