package timetable

// MinuteOfDay 将 "HH:MM" 解析为当天第几分钟。
// 采用整数比较而不是把 "HHMM" 当字符串比较，避免没有补零的脏数据导致字典序出错。
func MinuteOfDay(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}

	h, ok := twoDigits(s[0], s[1])
	if !ok {
		return 0, false
	}
	m, ok := twoDigits(s[3], s[4])
	if !ok {
		return 0, false
	}

	if h > 23 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
