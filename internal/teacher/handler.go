package teacher

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the guru endpoints; r is expected to carry RequireAuth.
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/guru", h.Create)
	r.GET("/guru/:id/qr", h.Get)
	r.GET("/guru/:id/qr.png", h.QRImage)
	r.GET("/generate-qr", h.GenerateQR)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "Nama dan kode_qr wajib diisi"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) QRImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	png, err := h.svc.QRImage(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) GenerateQR(c *gin.Context) {
	res, err := h.svc.GenerateQR(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "id tidak valid"))
		return 0, false
	}
	return id, true
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
