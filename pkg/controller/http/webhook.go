package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
	"github.com/m-mizutani/gitdbfs/pkg/utils/async"
)

// GitHub does not deliver payloads above 25 MB
const maxPayloadSize = 25 << 20

// WebhookHandler handles GitHub push webhooks
type WebhookHandler struct {
	secret     string
	syncUC     interfaces.SyncUseCase
	jobTimeout time.Duration
	dispatcher *async.Dispatcher
}

// HandlerOption configures a WebhookHandler
type HandlerOption func(*WebhookHandler)

// WithHandlerJobTimeout bounds a synchronously run job
func WithHandlerJobTimeout(d time.Duration) HandlerOption {
	return func(h *WebhookHandler) {
		h.jobTimeout = d
	}
}

// WithHandlerDispatcher runs jobs in the background; nil keeps them synchronous
func WithHandlerDispatcher(d *async.Dispatcher) HandlerOption {
	return func(h *WebhookHandler) {
		h.dispatcher = d
	}
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, syncUC interfaces.SyncUseCase, opts ...HandlerOption) *WebhookHandler {
	h := &WebhookHandler{
		secret:     secret,
		syncUC:     syncUC,
		jobTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type webhookResponse struct {
	Status     string              `json:"status"`
	DeliveryID string              `json:"delivery_id,omitempty"`
	JobID      string              `json:"job_id,omitempty"`
	Outcome    model.JobOutcome    `json:"outcome,omitempty"`
	Folders    []*model.SyncResult `json:"folders,omitempty"`
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Read payload
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		ctxlog.From(ctx).Error("Failed to read request body", "error", err)
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), status)
		return
	}
	defer r.Body.Close()

	// Verify signature, falling back to the SHA-1 header of older GitHub Enterprise
	signature := r.Header.Get(github.SHA256SignatureHeader)
	if signature == "" {
		signature = r.Header.Get(github.SHA1SignatureHeader)
	}
	if signature == "" {
		ctxlog.From(ctx).Warn("Missing webhook signature")
		writeError(ctx, w, goerr.New("missing signature"), http.StatusUnauthorized)
		return
	}
	if err := github.ValidateSignature(signature, body, []byte(h.secret)); err != nil {
		ctxlog.From(ctx).Warn("Invalid webhook signature", "error", err)
		writeError(ctx, w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	event := &model.WebhookEvent{
		ID:         github.DeliveryID(r),
		Type:       model.WebhookEventType(github.WebHookType(r)),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}

	logger := ctxlog.From(ctx).With("delivery_id", event.ID, "event", event.Type)
	ctx = ctxlog.With(ctx, logger)

	switch {
	case event.Type == model.EventTypePing:
		logger.Info("Received ping")
		writeJSON(ctx, w, http.StatusOK, webhookResponse{Status: "pong", DeliveryID: event.ID})
		return
	case !event.IsSupportedEvent():
		logger.Info("Ignoring unsupported event")
		writeJSON(ctx, w, http.StatusOK, webhookResponse{Status: "ignored", DeliveryID: event.ID})
		return
	}

	if h.dispatcher != nil {
		h.dispatch(ctx, w, event)
		return
	}

	// The job outlives a sender that gave up waiting, but not the job timeout
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.jobTimeout)
	defer cancel()

	result, err := h.syncUC.HandlePush(jobCtx, event)
	if err != nil {
		logger.Error("Failed to process push event", "error", err)
		writeError(ctx, w, err, statusForError(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, webhookResponse{
		Status:     "success",
		DeliveryID: event.ID,
		JobID:      result.ID,
		Outcome:    result.Outcome,
		Folders:    result.Folders,
	})
}

// dispatch validates the payload up front so a malformed push is still
// rejected, then acknowledges and runs the job in the background
func (h *WebhookHandler) dispatch(ctx context.Context, w http.ResponseWriter, event *model.WebhookEvent) {
	if _, err := model.ParsePushEvent(event.RawPayload); err != nil {
		ctxlog.From(ctx).Warn("Rejected push payload", "error", err)
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	h.dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		_, err := h.syncUC.HandlePush(ctx, event)
		return err
	})

	writeJSON(ctx, w, http.StatusOK, webhookResponse{Status: "accepted", DeliveryID: event.ID})
}

func statusForError(err error) int {
	if types.KindOf(err) == types.KindMalformedPayload {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
