package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/socket"
	"blood-bank-api-server/internal/store"
	"blood-bank-api-server/internal/triage"
)

type RequestHandler struct {
	Requests store.RequestStore
	Hub      *socket.Hub
	Logger   *zap.Logger
}

type CreateBloodRequestRequest struct {
	PatientName   string `json:"patientName" binding:"required"`
	BloodGroup    string `json:"bloodGroup" binding:"required"`
	Hospital      string `json:"hospital" binding:"required"`
	UnitsRequired int    `json:"unitsRequired" binding:"required"`
	Urgency       string `json:"urgency"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateRequest is the public intake endpoint.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req CreateBloodRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.Requests.Create(c.Request.Context(), &models.BloodRequest{
		PatientName:   req.PatientName,
		BloodGroup:    req.BloodGroup,
		Hospital:      req.Hospital,
		UnitsRequired: req.UnitsRequired,
		Urgency:       req.Urgency,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.Logger.Info("blood request created",
		zap.String("id", record.ID),
		zap.String("bloodGroup", record.BloodGroup),
		zap.String("urgency", record.Urgency),
		zap.Int("unitsRequired", record.UnitsRequired))
	h.Hub.Broadcast("request.created", record)

	c.JSON(http.StatusCreated, record)
}

// ListRequests runs the triage pipeline server-side and returns one page.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	records, err := h.Requests.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list requests", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	result := triage.Apply(records, triage.Params{
		Search:     c.Query("search"),
		BloodGroup: c.Query("bloodGroup"),
		Status:     c.Query("status"),
		Urgency:    c.Query("urgency"),
		Page:       page,
	})

	c.JSON(http.StatusOK, result)
}

// UpdateRequestStatus moves a request through its lifecycle.
func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.Requests.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	h.Logger.Info("blood request status updated",
		zap.String("id", record.ID),
		zap.String("status", record.Status))
	h.Hub.Broadcast("request.updated", record)

	c.JSON(http.StatusOK, record)
}

// DeleteRequest removes a request permanently. Stock is never touched.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	id := c.Param("id")

	if err := h.Requests.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	h.Logger.Info("blood request deleted", zap.String("id", id))
	h.Hub.Broadcast("request.deleted", gin.H{"id": id})

	c.Status(http.StatusNoContent)
}
