package biometric

import (
	"io"
	"net/http"

	biometricerrors "go-payroll/internal/biometric/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Record(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Record(c.Request.Context(), req.Punches)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Import accepts the device export either as multipart field "file" or as
// a raw text/csv body.
func (h *Handler) Import(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			h.writeServiceError(c, biometricerrors.ErrInvalidCSV)
			return
		}
		defer f.Close()
		body = f
	}

	resp, err := h.service.ImportCSV(c.Request.Context(), body)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) PurgeByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		h.writeServiceError(c, apperror.RequiredField("date"))
		return
	}

	resp, err := h.service.PurgeByDate(c.Request.Context(), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PurgeUnmapped(c *gin.Context) {
	resp, err := h.service.PurgeUnmapped(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
