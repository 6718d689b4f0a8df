package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/config"
	"github.com/sofianedj/boardhub/internal/domain/invitation"
	"github.com/sofianedj/boardhub/internal/http/middlewares"
	"github.com/sofianedj/boardhub/internal/jobs"
	"github.com/sofianedj/boardhub/internal/utils"
)

type InvitationsRepository interface {
	CreateBatch(ctx context.Context, invs []invitation.Invitation) ([]invitation.Invitation, error)
	GetByID(ctx context.Context, id string) (invitation.Invitation, error)
	UpdateStatus(ctx context.Context, id string, next invitation.Status) (invitation.Invitation, error)
	ListForUser(ctx context.Context, userID string) (sent, received []invitation.Invitation, err error)
}

// JobEnqueuer pushes invitation-notice jobs onto the queue; delivery
// happens in the worker, never on the request path.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, j jobs.Job) error
}

type InvitationsHandler struct {
	repo  InvitationsRepository
	queue JobEnqueuer
	log   *slog.Logger
}

func NewInvitationsHandler(repo InvitationsRepository, queue JobEnqueuer, log *slog.Logger) *InvitationsHandler {
	return &InvitationsHandler{repo: repo, queue: queue, log: log}
}

func (h *InvitationsHandler) Create(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var req invitation.CreateInvitationsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	invs, err := invitation.NewBatch(identity.ID, req.UserIDs)

	if err != nil {
		if errors.Is(err, invitation.ErrSelfInvite) {
			RespondBadRequest(ctx, "You cannot invite yourself", nil)
			return
		}

		RespondBadRequest(ctx, "Invalid invitation list", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// the repo runs the whole batch in one transaction; a failure
	// commits nothing, so the client can correct and resend as-is
	created, err := h.repo.CreateBatch(cctx, invs)

	if err != nil {
		if errors.Is(err, invitation.ErrAlreadyInvited) {
			RespondConflict(ctx, "already_invited", "An invitation for this user already exists.")
			return
		}

		if errors.Is(err, invitation.ErrUnknownInvitee) {
			RespondBadRequest(ctx, "One of the invited users does not exist", nil)
			return
		}

		RespondInternal(ctx, "Could not create invitations")
		return
	}

	// notification delivery is async; a queue hiccup must not fail the
	// request that already committed the invitations
	for _, inv := range created {
		h.enqueueNotice(ctx.Request.Context(), identity.Name, inv)
	}

	RespondData(ctx, http.StatusCreated, created)
}

func (h *InvitationsHandler) enqueueNotice(ctx context.Context, inviterName string, inv invitation.Invitation) {
	if h.queue == nil {
		return
	}

	payload := jobs.InvitationNoticePayload{
		InvitationID: inv.ID,
		InviterID:    inv.InviterID,
		InviterName:  inviterName,
		InviteeID:    inv.InviteeID,
		RequestedAt:  time.Now().UTC(),
	}

	j, err := jobs.NewInvitationNotice(payload)

	if err == nil {
		err = h.queue.Enqueue(ctx, j)
	}

	if err != nil && h.log != nil {
		h.log.Error("enqueue invitation notice failed", "invitation_id", inv.ID, "err", err)
	}
}

func (h *InvitationsHandler) List(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	sent, received, err := h.repo.ListForUser(cctx, identity.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list invitations")
		return
	}

	RespondData(ctx, http.StatusOK, gin.H{
		"sent":     sent,
		"received": received,
	})
}

// Respond applies the invitee's accept/reject decision. Only the
// invitee may respond, and only while the invitation is pending.
func (h *InvitationsHandler) Respond(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "invitation id must be a valid UUID", nil)
		return
	}

	var req invitation.RespondRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	inv, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, invitation.ErrNotFound) {
			RespondNotFound(ctx, "Invitation not found")
			return
		}

		RespondInternal(ctx, "Could not respond to invitation")
		return
	}

	if inv.InviteeID != identity.ID {
		RespondForbidden(ctx, "Only the invited user can respond")
		return
	}

	if !inv.Status.CanTransitionTo(req.Status) {
		RespondConflict(ctx, "invalid_transition", "Invitation is no longer pending.")
		return
	}

	updated, err := h.repo.UpdateStatus(cctx, id, req.Status)

	if err != nil {
		if errors.Is(err, invitation.ErrInvalidTransition) {
			RespondConflict(ctx, "invalid_transition", "Invitation is no longer pending.")
			return
		}

		if errors.Is(err, invitation.ErrNotFound) {
			RespondNotFound(ctx, "Invitation not found")
			return
		}

		RespondInternal(ctx, "Could not respond to invitation")
		return
	}

	RespondData(ctx, http.StatusOK, updated)
}
