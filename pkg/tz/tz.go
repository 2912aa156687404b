package tz

import "time"

// Colombo is the Asia/Colombo location (IST, UTC+5:30, no DST).
var Colombo *time.Location

func init() {
	var err error
	Colombo, err = time.LoadLocation("Asia/Colombo")
	if err != nil {
		panic("tz: load Asia/Colombo: " + err.Error())
	}
}
