package view

import "strconv"

// TimeAgo formats the age of ts relative to now, both unix milliseconds,
// as seconds, minutes, hours or days. Each bucket truncates. Timestamps in
// the future read as "0s".
func TimeAgo(ts, now int64) string {
	diff := (now - ts) / 1000
	switch {
	case diff < 0:
		return "0s"
	case diff < 60:
		return strconv.FormatInt(diff, 10) + "s"
	case diff < 3600:
		return strconv.FormatInt(diff/60, 10) + "m"
	case diff < 86400:
		return strconv.FormatInt(diff/3600, 10) + "h"
	}
	return strconv.FormatInt(diff/86400, 10) + "d"
}
