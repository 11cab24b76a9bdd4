package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credexa/creditline-api/internal/audit"
	"github.com/credexa/creditline-api/internal/creditline"
	"github.com/credexa/creditline-api/internal/ratelimit"
)

type creditLineHandler struct {
	repo  *creditline.Repository
	audit *audit.Trail
}

type createCreditLineRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Limit      int64  `json:"limit" binding:"required,gt=0"`
	Currency   string `json:"currency" binding:"required,len=3"`
}

type updateCreditLineRequest struct {
	Limit  *int64  `json:"limit" binding:"omitempty,gt=0"`
	Drawn  *int64  `json:"drawn" binding:"omitempty,gte=0"`
	Status *string `json:"status" binding:"omitempty,oneof=active suspended closed"`
}

func (h *creditLineHandler) create(c *gin.Context) {
	var req createCreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line := h.repo.Create(req.CustomerID, req.Limit, req.Currency)
	h.audit.Record(ratelimit.ClientKey(c), "credit_line.create", line.ID)
	c.JSON(http.StatusCreated, line)
}

func (h *creditLineHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"creditLines": h.repo.List()})
}

func (h *creditLineHandler) get(c *gin.Context) {
	line, err := h.repo.Get(c.Param("id"))
	if err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *creditLineHandler) update(c *gin.Context) {
	var req updateCreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.repo.Update(c.Param("id"), func(l *creditline.CreditLine) {
		if req.Limit != nil {
			l.Limit = *req.Limit
		}
		if req.Drawn != nil {
			l.Drawn = *req.Drawn
		}
		if req.Status != nil {
			l.Status = creditline.Status(*req.Status)
		}
	})
	if err != nil {
		notFound(c, err)
		return
	}
	h.audit.Record(ratelimit.ClientKey(c), "credit_line.update", line.ID)
	c.JSON(http.StatusOK, line)
}

func (h *creditLineHandler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(id); err != nil {
		notFound(c, err)
		return
	}
	h.audit.Record(ratelimit.ClientKey(c), "credit_line.delete", id)
	c.Status(http.StatusNoContent)
}

func notFound(c *gin.Context, err error) {
	if errors.Is(err, creditline.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit line not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
