package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	"github.com/itzjmbruhhh/NU-Admission/internal/service"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
	"github.com/itzjmbruhhh/NU-Admission/pkg/response"
)

// ApplicantHandler exposes applicant endpoints.
type ApplicantHandler struct {
	applicants *service.ApplicantService
}

// NewApplicantHandler constructs ApplicantHandler.
func NewApplicantHandler(applicants *service.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants}
}

// Register godoc
// @Summary Submit an admission form
// @Tags Applicants
// @Accept json
// @Produce json
// @Param payload body service.RegisterApplicantRequest true "Admission form payload"
// @Success 201 {object} response.Envelope
// @Router /applicants [post]
func (h *ApplicantHandler) Register(c *gin.Context) {
	var req service.RegisterApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	applicant, err := h.applicants.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, applicant)
}

// List godoc
// @Summary List applicants
// @Tags Applicants
// @Produce json
// @Param search query string false "Search by name, email, or student ID"
// @Param program query string false "Filter by first-choice program"
// @Param entryLevel query string false "Filter by entry level"
// @Param schoolYear query string false "Filter by school year"
// @Param enrolled query bool false "Filter by enrollment status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants [get]
func (h *ApplicantHandler) List(c *gin.Context) {
	var filter models.ApplicantFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Program = c.Query("program")
	filter.EntryLevel = c.Query("entryLevel")
	filter.SchoolYear = c.Query("schoolYear")
	if enrolled := c.Query("enrolled"); enrolled != "" {
		if enrolled == "true" {
			v := true
			filter.Enrolled = &v
		} else if enrolled == "false" {
			v := false
			filter.Enrolled = &v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	applicants, pagination, err := h.applicants.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants, pagination)
}

// Get godoc
// @Summary Get applicant detail
// @Tags Applicants
// @Produce json
// @Param id path string true "Applicant ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants/{id} [get]
func (h *ApplicantHandler) Get(c *gin.Context) {
	applicant, err := h.applicants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicant, nil)
}

// Update godoc
// @Summary Update an applicant
// @Tags Applicants
// @Accept json
// @Produce json
// @Param id path string true "Applicant ID"
// @Param payload body service.UpdateApplicantRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants/{id} [put]
func (h *ApplicantHandler) Update(c *gin.Context) {
	var req service.UpdateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	applicant, err := h.applicants.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicant, nil)
}

// Delete godoc
// @Summary Delete an applicant
// @Tags Applicants
// @Param id path string true "Applicant ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /applicants/{id} [delete]
func (h *ApplicantHandler) Delete(c *gin.Context) {
	if err := h.applicants.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Rescore godoc
// @Summary Recompute enrollment chances for all applicants
// @Tags Applicants
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants/rescore [post]
func (h *ApplicantHandler) Rescore(c *gin.Context) {
	count, err := h.applicants.RescoreAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"rescored": count}, nil)
}
