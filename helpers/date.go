package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Era start years, offset by one so that era year 1 maps to the first year.
var eraOffsets = map[string]int{
	"明治": 1868 - 1,
	"大正": 1912 - 1,
	"昭和": 1926 - 1,
	"平成": 1989 - 1,
	"令和": 2019 - 1,
}

var (
	eraDatePattern     = regexp.MustCompile(`(明治|大正|昭和|平成|令和)\s*(\d+|元)\s*年\s*(\d+)\s*月\s*(\d+)\s*日`)
	westernDatePattern = regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日`)
	firstIntPattern    = regexp.MustCompile(`\d+`)
	submitterPattern   = regexp.MustCompile(`^(.*?)君`)
	extraCountPattern  = regexp.MustCompile(`外([零〇一二三四五六七八九十]+)名`)
)

var kanjiDigits = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// ConvertEraDate converts an era-style date ("令和元年1月24日") to ISO 8601
// ("2019-01-24"). Returns "" when the input holds no era date.
func ConvertEraDate(s string) string {
	m := eraDatePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	year := 1
	if m[2] != "元" {
		year, _ = strconv.Atoi(m[2])
	}
	month, _ := strconv.Atoi(m[3])
	day, _ := strconv.Atoi(m[4])
	return fmt.Sprintf("%04d-%02d-%02d", eraOffsets[m[1]]+year, month, day)
}

// ConvertWesternDate converts "2025年5月7日 (水)" to "2025-05-07".
// Returns "" when the input holds no such date.
func ConvertWesternDate(s string) string {
	m := westernDatePattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// SubmitterName extracts the representative submitter from a string such as
// "原口　一博君外二名" (everything before the first 君)
func SubmitterName(s string) string {
	if s == "" {
		return ""
	}
	if m := submitterPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// SubmitterCount returns the total number of submitters: the named one plus
// the 外〇名 kanji-numeral suffix. "原口　一博君外二名" yields 3.
func SubmitterCount(s string) int {
	if s == "" {
		return 0
	}
	extra := 0
	if m := extraCountPattern.FindStringSubmatch(s); m != nil {
		extra = kanjiToInt(m[1])
	}
	return 1 + extra
}

// kanjiToInt parses kanji numerals up to the tens ("十一" = 11, "二十" = 20)
func kanjiToInt(kan string) int {
	if kan == "十" {
		return 10
	}
	if tens, ones, found := strings.Cut(kan, "十"); found {
		t := 1
		if tens != "" {
			t = kanjiDigits[[]rune(tens)[0]]
		}
		o := 0
		if ones != "" {
			o = kanjiDigits[[]rune(ones)[0]]
		}
		return t*10 + o
	}
	if len(kan) > 0 {
		return kanjiDigits[[]rune(kan)[0]]
	}
	return 0
}

// ParseDays extracts the first integer from a day-count cell ("150日間" → 150)
func ParseDays(s string) int {
	m := firstIntPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// DateRange returns every day from start to end inclusive, both in YYYYMMDD
// form. An inverted range yields an empty slice.
func DateRange(start, end string) ([]string, error) {
	startDate, err := time.Parse("20060102", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse("20060102", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	var dates []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("20060102"))
	}
	return dates, nil
}
