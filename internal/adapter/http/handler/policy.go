package handler

import (
	"context"

	"glin-wallet/internal/adapter/http/dto"
	"glin-wallet/pkg/apperror"
)

// dappAllowed lists the message types a web page may send. The value says
// whether the origin must already be connected.
var dappAllowed = map[dto.MessageType]bool{
	dto.RequestConnection:   false,
	dto.GetAccounts:         true,
	dto.SignMessage:         true,
	dto.GetBalance:          true,
	dto.GetNetwork:          true,
	dto.AuthenticateBackend: true,
}

// checkDappPolicy rejects message types a page may not send, and allowed
// types from an origin the user has not connected.
func (h *MessageHandler) checkDappPolicy(ctx context.Context, origin string, t dto.MessageType) error {
	needsConnection, ok := dappAllowed[t]
	if !ok {
		return apperror.ErrForbiddenForDapp(string(t))
	}
	if !needsConnection {
		return nil
	}
	connected, err := h.deps.Coordinator.IsSiteConnected(ctx, origin)
	if err != nil {
		return err
	}
	if !connected {
		return apperror.ErrSiteNotConnected()
	}
	return nil
}
