package attendance

import "errors"

var (
	ErrInvalidStatus   = errors.New("status must be one of hadir, hadir+lembur, izin")
	ErrInvalidOvertime = errors.New("overtime must be a whole number of hours")
)
