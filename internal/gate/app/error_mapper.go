package app

import (
	"context"
	"errors"
	"net"
)

// WrapTransportErr 把上游 HTTP 调用的传输层错误归一成 errx 系错误，
// 并带上访问日志用的 reason。业务拒绝不会走到这里。
func WrapTransportErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable.WithReason(ReasonUpstreamTimeout).WithCause(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrUnavailable.WithReason(ReasonUpstreamTimeout).WithCause(err)
		}
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable).WithCause(err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable).WithCause(err)
	}
	return ErrInternalServer.WithReason(ReasonUpstreamInternal).WithCause(err)
}
