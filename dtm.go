// Package dtm provides a timestamp value with an attached rendering zone and
// a companion duration value, with day arithmetic that stays correct across
// DST transitions.
//
// A Timestamp stores true UTC epoch seconds; its zone is used only to read
// and write wall-clock values. A Duration is a signed count of seconds.
//
// Example usage:
//
//	ts, err := dtm.Parse("2018.0117 10:00:00", "America/Boise")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(ts.Unix())                 // 1516208400
//	fmt.Println(ts.NextDay(1))             // 2018-01-18 00:00:00 MST
//	wed, _ := ts.NextWeekday("wed")
//	fmt.Println(wed.YMDWeekday())          // 2018.0124.wed
//	fmt.Println(ts.Sub(wed).DHHMMSS())     // -6d14:00:00
//
// Zones may be given as a *time.Location, as an IANA name matched
// case-insensitively ("est5edt", "america/boise"), or as nil or "local" for
// the host zone.
//
// The environment variables DTM_FORMATS (semicolon-separated extra parse
// formats, tried first) and DTM_STR (the layout used by Timestamp.String)
// adjust parsing and rendering.
package dtm
