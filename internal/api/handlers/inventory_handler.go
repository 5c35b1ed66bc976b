package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/socket"
	"blood-bank-api-server/internal/store"
)

type InventoryHandler struct {
	Ledger store.StockLedger
	Hub    *socket.Hub
	Logger *zap.Logger
}

type AdjustInventoryRequest struct {
	// Pointers so that an explicit zero is distinguishable from a
	// missing field.
	UnitsAvailable *int `json:"unitsAvailable" binding:"required"`
	PricePerUnit   *int `json:"pricePerUnit" binding:"required"`
}

// GetInventory returns every stock record in canonical blood-group order
// plus the dashboard summary.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	records, err := h.Ledger.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list inventory", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inventory": records,
		"summary":   models.SummarizeInventory(records),
	})
}

// AdjustInventory replaces the unit count and price of one blood group.
func (h *InventoryHandler) AdjustInventory(c *gin.Context) {
	bloodGroup := c.Param("bloodGroup")

	var req AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.Ledger.Adjust(c.Request.Context(), bloodGroup, *req.UnitsAvailable, *req.PricePerUnit)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.Logger.Info("inventory adjusted",
		zap.String("bloodGroup", record.BloodGroup),
		zap.Int("unitsAvailable", record.UnitsAvailable),
		zap.Int("pricePerUnit", record.PricePerUnit),
		zap.String("status", record.Status))
	h.Hub.Broadcast("inventory.updated", record)

	c.JSON(http.StatusOK, record)
}

// respondStoreError maps store errors onto HTTP statuses. Validation
// failures carry the offending field.
func respondStoreError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
