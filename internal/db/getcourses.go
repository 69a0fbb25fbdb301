//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/e-gun/CourseNLPServer/internal/str"
)

const (
	DESCRQUERY  = `SELECT "ID", "Description" FROM "Courses" ORDER BY "ID"`
	COURSEQUERY = `SELECT "ID", "Title", "Rating", "Hours", "Url", "Description",
			"PriceDetail_Amount", "PriceDetail_Currency", "PriceDetail_CurrencySymbol", "PriceDetail_PriceString"
		FROM "Courses" ORDER BY "ID"`
)

// FetchDescriptions - (id, raw description) pairs in table order; a NULL description is ""
func (s *SQLStore) FetchDescriptions(ctx context.Context) ([]str.CorpusEntry, error) {
	const (
		FAIL1 = "FetchDescriptions() query failed: %w"
		FAIL2 = "FetchDescriptions() could not scan a row: %w"
	)

	dbh, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer dbh.Close()

	rows, err := dbh.QueryContext(ctx, DESCRQUERY)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	defer rows.Close()

	var found []str.CorpusEntry
	for rows.Next() {
		var id int64
		var d sql.NullString
		if err = rows.Scan(&id, &d); err != nil {
			return nil, fmt.Errorf(FAIL2, err)
		}
		found = append(found, str.CorpusEntry{ID: id, Description: d.String})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	return found, nil
}

// FetchCourses - the full live rows, uncleaned, in table order
func (s *SQLStore) FetchCourses(ctx context.Context) ([]str.CourseRecord, error) {
	const (
		FAIL1 = "FetchCourses() query failed: %w"
		FAIL2 = "FetchCourses() could not scan a row: %w"
	)

	dbh, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer dbh.Close()

	rows, err := dbh.QueryContext(ctx, COURSEQUERY)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	defer rows.Close()

	var found []str.CourseRecord
	for rows.Next() {
		var (
			c                    str.CourseRecord
			title, u, descr      sql.NullString
			curr, csym, pstring  sql.NullString
			rating, hours, price sql.NullFloat64
		)

		err = rows.Scan(&c.ID, &title, &rating, &hours, &u, &descr, &price, &curr, &csym, &pstring)
		if err != nil {
			return nil, fmt.Errorf(FAIL2, err)
		}

		c.Title = title.String
		c.Rating = rating.Float64
		c.Hours = hours.Float64
		c.URL = u.String
		c.Description = descr.String
		c.PriceDetail = str.PriceDetail{
			Amount:         price.Float64,
			Currency:       curr.String,
			CurrencySymbol: csym.String,
			PriceString:    pstring.String,
		}
		found = append(found, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	return found, nil
}

// CountCourses - how many rows does the live store hold? used to check the store at launch
func (s *SQLStore) CountCourses(ctx context.Context) (int, error) {
	const (
		Q    = `SELECT COUNT("ID") FROM "Courses"`
		FAIL = "CountCourses() query failed: %w"
	)

	dbh, err := s.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer dbh.Close()

	var n int
	if err = dbh.QueryRowContext(ctx, Q).Scan(&n); err != nil {
		return 0, fmt.Errorf(FAIL, err)
	}
	return n, nil
}
