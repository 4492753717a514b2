package report

// PayrollReportRow is one line of the monthly payroll export.
type PayrollReportRow struct {
	Name     string `csv:"Nama"`
	Position string `csv:"Posisi"`
	Salary   int64  `csv:"Gaji"`
	Present  int    `csv:"Hadir"`
	Recorded int    `csv:"Hari Tercatat"`
	Rate     string `csv:"% Kehadiran"`
}

// File is a rendered export.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}
