package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"snapclock.com/snapclock/core"
)

type reportRow struct {
	Name     string
	Email    string
	Status   string
	Date     string
	Time     string
	Location string
	ImageURL string
}

func main() {
	var (
		out  = flag.String("out", "timekeeping.xlsx", "output file")
		date = flag.String("date", "", "only include entries for this dd/mm/yyyy date")
	)
	flag.Parse()

	dsn := os.Getenv("DSN")
	if dsn == "" {
		log.Fatal("DSN is not set")
	}

	db, err := core.ConnectDB(dsn)
	if err != nil {
		log.Fatal(err)
	}

	query := db.Table("timekeeping_entries").
		Select(`users.name as name,
		users.email as email,
		timekeeping_entries.status as status,
		timekeeping_entries.date as date,
		timekeeping_entries.time as time,
		timekeeping_entries.location as location,
		timekeeping_entries.image_url as image_url`).
		Joins("JOIN users ON users.id = timekeeping_entries.user_id").
		Order("timekeeping_entries.id")
	if *date != "" {
		query = query.Where("timekeeping_entries.date = ?", *date)
	}

	var rows []reportRow
	if err := query.Scan(&rows).Error; err != nil {
		log.Fatalf("failed to query entries: %v", err)
	}
	fmt.Printf("Exporting %d entries\n", len(rows))

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timekeeping"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		log.Fatal(err)
	}

	headers := []string{"Name", "Email", "Status", "Date", "Time", "Location", "Photo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			log.Fatal(err)
		}
	}

	for i, row := range rows {
		values := []string{row.Name, row.Email, row.Status, row.Date, row.Time, row.Location, row.ImageURL}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("failed to save %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s\n", *out)
}
