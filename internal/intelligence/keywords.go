package intelligence

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

// knownLocations is scanned in order; the first contained word wins.
var knownLocations = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"제주", "강남", "홍대", "명동", "인사동", "이태원", "신촌", "압구정",
	"강북", "강동", "강서", "관악", "노원", "도봉", "동대문", "마포",
	"서대문", "성동", "성북", "송파", "양천", "영등포", "용산", "은평",
	"종로", "중구", "중랑",
	"해운대", "광안리", "잠실", "여의도", "남산", "성산",
}

var dateWords = []string{
	"오늘", "내일", "모레", "이번주", "다음주", "주말", "토요일", "일요일",
}

type budgetPattern struct {
	re      *regexp.Regexp
	tenKWon bool // amount is in units of 만 (10,000)
}

var budgetPatterns = []budgetPattern{
	{regexp.MustCompile(`(\d+)만원`), true},
	{regexp.MustCompile(`(\d+)만`), true},
	{regexp.MustCompile(`(\d+)원`), false},
	{regexp.MustCompile(`예산.*?(\d+)만`), true},
	{regexp.MustCompile(`(\d+)정도`), false},
}

// interestKeywords maps an interest label to the words that imply it.
var interestKeywords = []struct {
	label    string
	keywords []string
}{
	{"문화재", []string{"문화재", "궁", "고궁", "한옥", "전통", "역사"}},
	{"카페", []string{"카페", "커피", "디저트", "브런치"}},
	{"박물관", []string{"박물관", "미술관", "갤러리", "전시"}},
	{"쇼핑", []string{"쇼핑", "백화점", "마트", "시장", "구매"}},
	{"공원", []string{"공원", "산책", "자연", "숲"}},
	{"레스토랑", []string{"레스토랑", "식당", "맛집", "음식", "식사"}},
	{"전망대", []string{"전망", "뷰", "야경", "타워"}},
	{"테마파크", []string{"놀이공원", "테마파크", "롤러코스터"}},
	{"해변", []string{"바다", "해변", "해수욕장", "바닷가"}},
}

var (
	clockPattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hourPattern     = regexp.MustCompile(`(오전|오후|아침|저녁|밤)?\s*(\d{1,2})시([^간]|$)`)
	thousandsSepRun = regexp.MustCompile(`(\d),(\d{3})`)
)

// KeywordExtractor is the deterministic extractor. It never fails.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (KeywordExtractor) Extract(_ context.Context, text string) (domain.Entities, error) {
	return domain.Entities{
		Location:  ExtractLocation(text),
		Budget:    ExtractBudget(text),
		Date:      ExtractDate(text),
		Interests: ExtractInterests(text),
		StartTime: ExtractStartTime(text),
	}, nil
}

func ExtractLocation(text string) *string {
	for _, loc := range knownLocations {
		if strings.Contains(text, loc) {
			return domain.StringPtr(loc)
		}
	}
	return nil
}

// ExtractBudget understands "10만원", "10만", "50000원", "예산은 10만" and
// "10정도". Amounts in 만 units, or below 1000, are multiplied by 10,000.
func ExtractBudget(text string) *float64 {
	for thousandsSepRun.MatchString(text) {
		text = thousandsSepRun.ReplaceAllString(text, "$1$2")
	}
	for _, p := range budgetPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if p.tenKWon || amount < 1000 {
			return domain.Float64Ptr(float64(amount * 10000))
		}
		return domain.Float64Ptr(float64(amount))
	}
	return nil
}

func ExtractDate(text string) *string {
	for _, w := range dateWords {
		if strings.Contains(text, w) {
			return domain.StringPtr(w)
		}
	}
	return nil
}

// ExtractInterests returns every interest label whose keywords appear in
// text, in a fixed order.
func ExtractInterests(text string) []string {
	var out []string
	for _, ik := range interestKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(text, kw) {
				out = append(out, ik.label)
				break
			}
		}
	}
	return out
}

// ExtractStartTime finds "14:30" or "오후 2시" style tokens and returns the
// matched token unparsed.
func ExtractStartTime(text string) *string {
	if m := clockPattern.FindString(text); m != "" {
		return domain.StringPtr(m)
	}
	m := hourPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	token := m[2] + "시"
	if m[1] != "" {
		token = m[1] + " " + token
	}
	return domain.StringPtr(token)
}

// interestLabelFor maps free text such as "맛집 탐방" onto a known interest
// label. Unknown text is returned unchanged.
func interestLabelFor(s string) string {
	s = strings.TrimSpace(s)
	if c, ok := domain.ParseCategory(s); ok {
		return c.Label()
	}
	for _, ik := range interestKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(s, kw) {
				return ik.label
			}
		}
	}
	return s
}
