package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"glin-wallet/internal/adapter/http/dto"
	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/metrics"
	"glin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	defaultReplayWindow     = 10 * time.Minute
	defaultResponseCacheTTL = 24 * time.Hour
	sendScope               = "send"
)

// MessageHandlerDeps wires a MessageHandler.
type MessageHandlerDeps struct {
	Coordinator ports.SessionCoordinator
	Replay      ports.ReplayGuard   // nil = no replay protection
	Responses   ports.ResponseCache // nil = SEND_TRANSACTION is not idempotent
	Metrics     *metrics.Metrics

	ReplayWindow     time.Duration
	ResponseCacheTTL time.Duration
}

// MessageHandler turns request envelopes into exactly one response
// envelope each.
type MessageHandler struct {
	deps MessageHandlerDeps
	log  zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(deps MessageHandlerDeps, log zerolog.Logger) *MessageHandler {
	if deps.ReplayWindow <= 0 {
		deps.ReplayWindow = defaultReplayWindow
	}
	if deps.ResponseCacheTTL <= 0 {
		deps.ResponseCacheTTL = defaultResponseCacheTTL
	}
	return &MessageHandler{deps: deps, log: logger.Component(log, "messages")}
}

// caller identifies who sent a message.
type caller struct {
	surface string
	origin  string // dapp origin; empty for extension surfaces
}

func (c caller) isDapp() bool { return c.surface == middleware.SurfaceDapp }

// replayScope separates request-id namespaces per surface and origin.
func (c caller) replayScope() string {
	if c.isDapp() {
		return "dapp:" + c.origin
	}
	return c.surface
}

// HandleExtension handles POST /api/v1/messages.
func (h *MessageHandler) HandleExtension(c *gin.Context) {
	h.handle(c, caller{surface: middleware.SurfaceExtension})
}

// HandleDapp handles POST /api/v1/dapp/messages. The origin comes from the
// transport, never from the envelope.
func (h *MessageHandler) HandleDapp(c *gin.Context) {
	h.handle(c, caller{surface: middleware.SurfaceDapp, origin: c.GetString(middleware.CtxOrigin)})
}

func (h *MessageHandler) handle(c *gin.Context, from caller) {
	start := time.Now()

	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "", apperror.ValidationError("Malformed message envelope"))
		return
	}
	c.Set(middleware.CtxMessageID, req.ID)
	c.Set(middleware.CtxMessageType, string(req.Type))

	env := h.process(c, from, req)
	h.deps.Metrics.ObserveMessage(string(req.Type), from.surface, outcome(env), time.Since(start))
	h.write(c, env)
}

// process runs every check and the operation itself, returning the
// envelope to send.
func (h *MessageHandler) process(c *gin.Context, from caller, req dto.Request) envelope {
	ctx := c.Request.Context()

	payload, err := dto.DecodePayload(req)
	if err != nil {
		return failure(req.ID, err)
	}

	if from.isDapp() {
		if err := h.checkDappPolicy(ctx, from.origin, req.Type); err != nil {
			if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindForbidden {
				c.Set(middleware.CtxDenied, middleware.Denial{MessageType: string(req.Type), Code: appErr.Code})
			}
			return failure(req.ID, err)
		}
	}

	if req.Type == dto.SendTransaction {
		return h.idempotentSend(ctx, from, req, payload)
	}

	if err := h.claimRequestID(ctx, from, req.ID); err != nil {
		return failure(req.ID, err)
	}
	return h.run(ctx, from, req, payload)
}

func (h *MessageHandler) run(ctx context.Context, from caller, req dto.Request, payload dto.Payload) envelope {
	data, err := h.dispatch(ctx, from, payload)
	if err != nil {
		h.logFailure(from, req, err)
		return failure(req.ID, err)
	}
	return success(req.ID, data)
}

// claimRequestID rejects an id this caller already used inside the replay
// window. A failing store is logged and the request allowed.
func (h *MessageHandler) claimRequestID(ctx context.Context, from caller, id string) error {
	if h.deps.Replay == nil {
		return nil
	}
	isNew, err := h.deps.Replay.CheckAndSet(ctx, from.replayScope(), id, h.deps.ReplayWindow)
	if err != nil {
		h.log.Warn().Err(err).Str("message_id", id).Msg("replay guard error, allowing request")
		return nil
	}
	if !isNew {
		return apperror.ErrRequestReplayed()
	}
	return nil
}

// idempotentSend submits a transfer at most once per request id. A retry
// of a finished request gets the original envelope back; a retry of one
// still in flight is refused.
func (h *MessageHandler) idempotentSend(ctx context.Context, from caller, req dto.Request, payload dto.Payload) envelope {
	if h.deps.Replay == nil || h.deps.Responses == nil {
		return h.run(ctx, from, req, payload)
	}
	key := sendScope + ":" + from.replayScope() + ":" + req.ID

	isNew, err := h.deps.Replay.CheckAndSet(ctx, sendScope+":"+from.replayScope(), req.ID, h.deps.ResponseCacheTTL)
	if err != nil {
		// A transfer is never submitted without a claimed id.
		h.reqLog(from, req).Error().Err(err).Msg("cannot claim send request id")
		return failure(req.ID, apperror.InternalError(err))
	}
	if !isNew {
		cached, err := h.deps.Responses.Get(ctx, key)
		if err != nil {
			h.reqLog(from, req).Warn().Err(err).Msg("response cache read failed")
		}
		if cached != nil {
			h.reqLog(from, req).Info().Msg("returning cached send response")
			return cachedEnvelope(cached)
		}
		return failure(req.ID, apperror.ErrRequestReplayed())
	}

	env := h.run(ctx, from, req, payload)
	raw, err := json.Marshal(env.msg)
	if err == nil {
		// The submission may outlive the caller; cache even if ctx is done.
		err = h.deps.Responses.Set(context.WithoutCancel(ctx), key, raw, h.deps.ResponseCacheTTL)
	}
	if err != nil {
		h.reqLog(from, req).Warn().Err(err).Msg("failed to cache send response")
	}
	return env
}

func (h *MessageHandler) reqLog(from caller, req dto.Request) *zerolog.Logger {
	log := logger.ForMessage(h.log, req.ID, string(req.Type), from.origin)
	return &log
}

func (h *MessageHandler) logFailure(from caller, req dto.Request, err error) {
	log := h.reqLog(from, req)
	event := log.Warn()
	if apperror.KindOf(err) == apperror.KindInternal {
		event = log.Error().Err(err)
	}
	event.
		Str("surface", from.surface).
		Str("kind", string(apperror.KindOf(err))).
		Msg("message failed")
}

// envelope is either a fresh response or a cached one replayed verbatim.
type envelope struct {
	msg    response.Message
	status int
	raw    []byte
}

// cachedEnvelope replays raw. A cached failure answers 409 since the id
// cannot be retried; its body still carries the original error.
func cachedEnvelope(raw []byte) envelope {
	var head struct {
		Success bool `json:"success"`
	}
	status := http.StatusOK
	if err := json.Unmarshal(raw, &head); err != nil || !head.Success {
		status = http.StatusConflict
	}
	return envelope{raw: raw, status: status}
}

func success(requestID string, data interface{}) envelope {
	return envelope{msg: response.Success(requestID, data), status: http.StatusOK}
}

func failure(requestID string, err error) envelope {
	status := http.StatusInternalServerError
	if appErr, ok := apperror.As(err); ok {
		status = appErr.HTTPStatus
	}
	return envelope{msg: response.Failure(requestID, err), status: status}
}

func (h *MessageHandler) write(c *gin.Context, env envelope) {
	if env.raw != nil {
		c.Data(env.status, "application/json; charset=utf-8", env.raw)
		return
	}
	c.JSON(env.status, env.msg)
}

func outcome(env envelope) string {
	switch {
	case env.raw != nil:
		return "cached"
	case env.msg.Success:
		return "ok"
	default:
		return "error"
	}
}
