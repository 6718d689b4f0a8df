package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/authz"
	"github.com/sofianedj/boardhub/internal/domain/board"
	"github.com/sofianedj/boardhub/internal/utils"
)

type BoardLoader interface {
	GetByID(ctx context.Context, id string) (board.Board, error)
}

// BoardOwnership is the ownership gate for single-board routes: load
// the board, 404 if absent, then ask the shared policy whether the
// authenticated identity may touch it.
type BoardOwnership struct {
	boards BoardLoader
	policy authz.Policy
}

func NewBoardOwnership(boards BoardLoader, policy authz.Policy) *BoardOwnership {
	return &BoardOwnership{boards: boards, policy: policy}
}

func (o *BoardOwnership) RequireOwner(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if !utils.IsUUID(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "invalid_id",
					"message": "board id must be a valid UUID",
				},
			})
			return
		}

		identity, ok := IdentityFromContext(c)

		if !ok {
			abortUnauthorized(c, "Missing identity context")
			return
		}

		cctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		b, err := o.boards.GetByID(cctx, id)

		if err != nil {
			if errors.Is(err, board.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "not_found",
						"message": "Board not found",
					},
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "internal_error",
					"message": "Could not load board",
				},
			})
			return
		}

		if err := o.policy.Authorize(identity, action, b.OwnerID); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "forbidden",
					"message": "You do not own this board",
				},
			})
			return
		}

		// handlers read the loaded board instead of fetching it again
		c.Set(CtxBoard, b)

		c.Next()
	}
}

func BoardFromContext(c *gin.Context) (board.Board, bool) {
	v, ok := c.Get(CtxBoard)
	if !ok {
		return board.Board{}, false
	}

	b, ok := v.(board.Board)
	return b, ok
}
