package teacher

type CreateTeacherRequest struct {
	Nama   string `json:"nama" binding:"required"`
	KodeQR string `json:"kode_qr" binding:"required"`
}

type CreateTeacherResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type TeacherResponse struct {
	ID     int64  `json:"id"`
	Nama   string `json:"nama"`
	KodeQR string `json:"kode_qr"`
}

// GeneratedQRResponse carries a fresh code and its PNG as a data URL.
type GeneratedQRResponse struct {
	KodeQR  string `json:"kode_qr"`
	QRImage string `json:"qr_image"`
}
