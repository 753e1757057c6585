package export

import "strings"

// domainTermLatin maps the fixed Japanese terms of the printed form to
// romanized stand-ins for the no-font vector path. Longer terms come
// first so compound words are not shadowed by their parts. Free text
// outside this table renders incorrectly without a configured TTF; that
// is a documented limitation of the degraded path.
var domainTermLatin = []string{
	"支援領域", "Shien-Ryoiki",
	"支援内容", "Shien-Naiyo",
	"行います", "Okonaimasu",
	"サービス", "Service",
	"責任者", "Sekininsha",
	"承認者", "Shonninsha",
	"定期的", "Teikiteki",
	"見直し", "Minaoshi",
	"総合的", "Sogoteki",
	"ご本人", "Gohonnin",
	"ご家族", "Gokazoku",
	"担当者", "Tantosha",
	"優先度", "Yusendo",
	"ヶ月", "Kagetsu",
	"個別", "Kobetsu",
	"支援", "Shien",
	"計画", "Keikaku",
	"就労", "Shuro",
	"継続", "Keizoku",
	"生活", "Seikatsu",
	"介護", "Kaigo",
	"種別", "Shubetsu",
	"作成", "Sakusei",
	"期間", "Kikan",
	"項目", "Komoku",
	"内容", "Naiyo",
	"意向", "Iko",
	"方針", "Hoshin",
	"目標", "Mokuhyo",
	"区分", "Kubun",
	"長期", "Choki",
	"短期", "Tanki",
	"達成", "Tassei",
	"時期", "Jiki",
	"留意", "Ryui",
	"事項", "Jiko",
	"本人", "Honnin",
	"役割", "Yakuwari",
	"含む", "Fukumu",
	"更新", "Koshin",
	"管理", "Kanri",
	"この", "Kono",
	"から", "kara",
	"まで", "made",
	"書", "Sho",
	"年", "Nen",
	"日", "Hi",
	"は", "wa",
	"を", "wo",
	"に", "ni",
	"の", "no",
	"と", "to",
	"が", "ga",
	"で", "de",
}

var latinReplacer = strings.NewReplacer(domainTermLatin...)

// ToLatinEquivalent substitutes known domain terms with romanized text.
func ToLatinEquivalent(text string) string {
	return latinReplacer.Replace(text)
}

// ContainsJapanese reports whether the text has hiragana, katakana or
// CJK ideograph runes.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309f: // hiragana
			return true
		case r >= 0x30a0 && r <= 0x30ff: // katakana
			return true
		case r >= 0x4e00 && r <= 0x9faf: // CJK unified
			return true
		case r >= 0x3400 && r <= 0x4dbf: // CJK extension A
			return true
		}
	}
	return false
}
