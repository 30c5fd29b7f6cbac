package teacher

// Teacher is a row of the guru table.
type Teacher struct {
	ID     int64
	Nama   string
	KodeQR string
}

func (t Teacher) toDTO() TeacherResponse {
	return TeacherResponse{ID: t.ID, Nama: t.Nama, KodeQR: t.KodeQR}
}
