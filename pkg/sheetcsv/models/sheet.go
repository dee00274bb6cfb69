package models

// SheetData represents the rows extracted from a single worksheet.
type SheetData struct {
	// Part is the archive path of the worksheet (e.g. xl/worksheets/sheet1.xml).
	Part string `json:"part"`
	// Rows contains the non-empty rows in document order.
	Rows []Row `json:"rows"`
}

// SheetInfo describes one sheet declared in the workbook.
type SheetInfo struct {
	// Name is the sheet title shown in the spreadsheet application.
	Name string `json:"name"`
	// Part is the archive path of the worksheet part.
	Part string `json:"part"`
}
