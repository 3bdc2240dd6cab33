package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

	transliteration = map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
		'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
		'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
		'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
		'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
		'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
		'э': "e", 'ю': "yu", 'я': "ya",
		'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ç': "c",
		'é': "e", 'ê': "e", 'í': "i", 'ó': "o", 'ô': "o",
		'õ': "o", 'ú': "u", 'ü': "u",
	}
)

// GenerateCodeFromName создает системный CODE из названия, обрезая до maxLen символов.
// "Филиал Центр №1" -> "FILIAL_TSENTR_1"
func GenerateCodeFromName(name string, maxLen int) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var sb strings.Builder
	for _, r := range s {
		if repl, ok := transliteration[r]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteRune(r)
		}
	}

	res := nonAlnumRegex.ReplaceAllString(sb.String(), "_")
	res = strings.ToUpper(strings.Trim(res, "_"))
	if maxLen > 0 && len(res) > maxLen {
		res = strings.TrimRight(res[:maxLen], "_")
	}
	return res
}
