package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-bank-api-server/internal/auth"
	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/store"
)

type AdminHandler struct {
	Admins    store.AdminStore
	Ledger    store.StockLedger
	Requests  store.RequestStore
	JWTSecret []byte
	JWTTTL    time.Duration
	Logger    *zap.Logger
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks admin credentials and issues a bearer token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.Admins.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same answer as a bad password; do not reveal which.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.Logger.Error("failed to look up admin", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, admin.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, admin.Email, auth.RoleAdmin, h.JWTTTL)
	if err != nil {
		h.Logger.Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.Logger.Info("admin logged in", zap.String("email", admin.Email))
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetDashboardStats aggregates the numbers the admin dashboard shows at
// the top: demand counts plus ledger totals.
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	requests, err := h.Requests.ListAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	inventory, err := h.Ledger.ListAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	pending := 0
	for _, req := range requests {
		if req.Status == models.RequestPending {
			pending++
		}
	}
	summary := models.SummarizeInventory(inventory)

	c.JSON(http.StatusOK, gin.H{
		"totalRequests":      len(requests),
		"pendingRequests":    pending,
		"totalUnits":         summary.TotalUnits,
		"bloodGroups":        summary.BloodGroups,
		"criticalStockCount": summary.CriticalStockCount,
	})
}

// GetRecentRequests returns the five newest requests.
func (h *AdminHandler) GetRecentRequests(c *gin.Context) {
	requests, err := h.Requests.ListAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	if len(requests) > 5 {
		requests = requests[:5]
	}

	c.JSON(http.StatusOK, requests)
}
