package attendance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgRequired   = "Nama dan QR Code wajib diisi"
	msgLocation   = "Lokasi (lat, lng) wajib diisi"
	msgCoordinate = "Koordinat tidak valid"
)

type Handler struct {
	svc      *Service
	filename string
}

// RegisterRoutes mounts check-in on public and the admin endpoints on
// private (expected to carry RequireAuth).
func RegisterRoutes(public, private gin.IRoutes, svc *Service, exportFilename string) {
	if exportFilename == "" {
		exportFilename = "absensi.xlsx"
	}
	h := &Handler{svc: svc, filename: exportFilename}

	public.POST("/absen", h.CheckIn)

	private.GET("/absen", h.List)
	private.GET("/export-excel", h.Export)
}

// POST /absen
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, bindErrorMessage(err)))
		return
	}

	res, err := h.svc.CheckIn(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /absen
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /export-excel
func (h *Handler) Export(c *gin.Context) {
	buf, err := h.svc.Export(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+h.filename)
	c.Data(http.StatusOK, XLSXContentType, buf.Bytes())
}

// ---------- helpers ----------

// bindErrorMessage maps a ShouldBindJSON failure to the user-facing message.
// Coordinate problems (out of range or not a number) get their own message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if isCoordField(fe.StructField()) && fe.Tag() != "required" {
				return msgCoordinate
			}
		}
		return msgRequired
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && isCoordField(typeErr.Field) {
		return msgCoordinate
	}
	return msgRequired
}

func isCoordField(name string) bool {
	switch name {
	case "Lat", "Lng", "lat", "lng":
		return true
	}
	return false
}

func errorBody(code Code, msg string) gin.H {
	return gin.H{"code": code, "error": msg}
}

func errorFromErr(err error) gin.H {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeInternal, "Terjadi kesalahan server")
}
