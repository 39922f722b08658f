package handler

import (
	"context"

	"glin-wallet/internal/adapter/http/dto"
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
)

// dispatch runs one decoded message and returns the data for its RESPONSE.
func (h *MessageHandler) dispatch(ctx context.Context, from caller, payload dto.Payload) (interface{}, error) {
	coord := h.deps.Coordinator

	// Session-level messages that work before a wallet manager exists.
	switch p := payload.(type) {
	case *dto.GetStatePayload:
		return coord.GetState(ctx)

	case *dto.LockWalletPayload:
		coord.Lock(ctx)
		return dto.SuccessResponse{Success: true}, nil

	case *dto.RequestConnectionPayload:
		origin := p.Origin
		if from.isDapp() {
			origin = from.origin
		}
		if origin == "" {
			return nil, apperror.ValidationError("origin is required")
		}
		return coord.RequestConnection(ctx, origin, p.AppName, p.AppIcon)

	case *dto.ApproveConnectionPayload:
		if err := coord.ApprovePendingRequest(ctx, dto.ParseID(p.RequestID)); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.RejectConnectionPayload:
		if err := coord.RejectPendingRequest(ctx, dto.ParseID(p.RequestID), p.Reason); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.GetPendingRequestPayload:
		return coord.GetPendingRequest(dto.ParseID(p.RequestID))

	case *dto.ApprovalWindowClosedPayload:
		if err := coord.ApprovalWindowClosed(ctx, p.WindowID); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.DisconnectSitePayload:
		if err := coord.DisconnectSite(ctx, p.Origin); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.GetConnectedSitesPayload:
		sites, err := coord.ConnectedSites(ctx)
		if err != nil {
			return nil, err
		}
		return dto.SitesResponse{Sites: sites}, nil

	case *dto.ChangeNetworkPayload:
		network, err := coord.SwitchNetwork(ctx, p.NetworkID, p.Endpoint)
		if err != nil {
			return nil, err
		}
		return networkResponse(network, true), nil

	case *dto.GetNetworkPayload:
		network, err := coord.CurrentNetwork(ctx)
		if err != nil {
			return nil, err
		}
		return networkResponse(network, false), nil

	case *dto.SetThemePayload:
		theme := domain.Theme(p.Theme)
		if err := coord.SetTheme(ctx, theme); err != nil {
			return nil, err
		}
		return dto.ThemeResponse{Success: true, Theme: string(theme)}, nil

	case *dto.GetThemePayload:
		theme, err := coord.GetTheme(ctx)
		if err != nil {
			return nil, err
		}
		return dto.ThemeResponse{Theme: string(theme)}, nil

	case *dto.SubscribeTransactionsPayload:
		id, err := coord.SubscribeTransactions(ctx, p.Address)
		if err != nil {
			return nil, err
		}
		return dto.SubscriptionResponse{SubscriptionID: id, Address: p.Address}, nil

	case *dto.AuthenticateBackendPayload:
		return coord.AuthenticateBackend(ctx)
	}

	manager, err := coord.Manager()
	if err != nil {
		return nil, err
	}
	if from.isDapp() {
		return dispatchDapp(ctx, manager, payload)
	}
	return dispatchWallet(ctx, manager, payload)
}

// dispatchDapp serves the manager-backed messages a connected page may send.
func dispatchDapp(ctx context.Context, manager ports.WalletManager, payload dto.Payload) (interface{}, error) {
	switch p := payload.(type) {
	case *dto.GetAccountsPayload:
		if manager.IsLocked() {
			return []domain.AccountSummary{}, nil
		}
		accounts, err := manager.GetAccounts(ctx)
		if err != nil {
			return nil, err
		}
		summaries := make([]domain.AccountSummary, 0, len(accounts))
		for i := range accounts {
			summaries = append(summaries, accounts[i].Summary())
		}
		return summaries, nil

	case *dto.SignMessagePayload:
		return manager.SignMessage(ctx, p.Message)

	case *dto.GetBalancePayload:
		return balance(ctx, manager, p.Address)
	}
	return nil, apperror.ErrForbiddenForDapp(string(payload.MessageType()))
}

func dispatchWallet(ctx context.Context, manager ports.WalletManager, payload dto.Payload) (interface{}, error) {
	switch p := payload.(type) {
	case *dto.CreateWalletPayload:
		return manager.CreateWallet(ctx, p.Name, p.Password, "", false)

	case *dto.ImportWalletPayload:
		return manager.ImportWallet(ctx, p.Name, p.Mnemonic, p.Password)

	case *dto.UnlockWalletPayload:
		ok, err := manager.UnlockWallet(ctx, dto.ParseID(p.WalletID), p.Password)
		if err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: ok}, nil

	case *dto.DeleteWalletPayload:
		ok, err := manager.DeleteWallet(ctx, dto.ParseID(p.WalletID), p.Password)
		if err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: ok}, nil

	case *dto.ExportSeedPayload:
		phrase, err := manager.ExportSeedPhrase(ctx, p.Password)
		if err != nil {
			return nil, err
		}
		return dto.SeedPhraseResponse{SeedPhrase: phrase}, nil

	case *dto.GetWalletsPayload:
		return manager.GetWallets(ctx)

	case *dto.SwitchWalletPayload:
		if err := manager.SwitchWallet(ctx, dto.ParseID(p.WalletID), p.Password); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.GetWalletStatusPayload:
		return manager.GetWalletStatus(ctx)

	case *dto.ChangePasswordPayload:
		if err := manager.ChangePassword(ctx, p.CurrentPassword, p.NewPassword); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.GetAccountsPayload:
		return manager.GetAccounts(ctx)

	case *dto.CreateAccountPayload:
		index := -1
		if p.Index != nil {
			index = *p.Index
		}
		account, err := manager.CreateAccount(ctx, dto.ParseID(p.WalletID), index, p.Name)
		if err != nil {
			return nil, err
		}
		return dto.AccountResponse{Account: account}, nil

	case *dto.SwitchAccountPayload:
		if err := manager.SwitchAccount(ctx, p.Address); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.RenameAccountPayload:
		if err := manager.RenameAccount(ctx, p.Address, p.Name); err != nil {
			return nil, err
		}
		return dto.SuccessResponse{Success: true}, nil

	case *dto.ExportAccountPayload:
		return manager.ExportAccount(ctx, p.Address, p.Password)

	case *dto.SignMessagePayload:
		return manager.SignMessage(ctx, p.Message)

	case *dto.GetBalancePayload:
		return balance(ctx, manager, p.Address)

	case *dto.SendTransactionPayload:
		amount, err := dto.ParseAmount(p.Amount)
		if err != nil {
			return nil, err
		}
		hash, err := manager.SendTransaction(ctx, p.To, amount)
		if err != nil {
			return nil, err
		}
		return dto.HashResponse{Hash: hash}, nil

	case *dto.EstimateFeePayload:
		amount, err := dto.ParseAmount(p.Amount)
		if err != nil {
			return nil, err
		}
		fee, err := manager.EstimateFee(ctx, p.To, amount)
		if err != nil {
			return nil, err
		}
		return dto.FeeResponse{Fee: fee.String()}, nil

	case *dto.GetTransactionHistoryPayload:
		txs, err := manager.GetTransactionHistory(ctx, p.Address, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
		if txs == nil {
			txs = []domain.Transaction{}
		}
		return dto.TransactionsResponse{Transactions: txs}, nil
	}
	return nil, apperror.ErrUnknownMessageType(string(payload.MessageType()))
}

// balance defaults to the current account when address is empty.
func balance(ctx context.Context, manager ports.WalletManager, address string) (interface{}, error) {
	if address == "" {
		current := manager.CurrentAccount()
		if current == nil {
			return nil, apperror.ErrWalletLocked()
		}
		address = current.Address
	}
	b, err := manager.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}
	return dto.BalanceResponse{Address: address, Balance: b}, nil
}

func networkResponse(n *domain.Network, changed bool) dto.NetworkResponse {
	return dto.NetworkResponse{Success: changed, Network: n.ID, Name: n.Name, Endpoint: n.Endpoint}
}
