package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer приводит текстовые поля к канонической форме для сравнения
// Нормализация детерминирована и не зависит от локали
type Normalizer struct{}

// NewNormalizer создает новый нормализатор
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize возвращает каноническую форму строки:
// нижний регистр, без диакритики, без пунктуации, с одиночными пробелами
// Пустой вход дает пустую строку, функция никогда не паникует
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// 1. Приводим к нижнему регистру
	s := strings.ToLower(text)

	// 2. Убираем диакритику: "é" -> "e", "ü" -> "u"
	//    NFD раскладывает символ на базу и модификаторы, Mn-модификаторы удаляются
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	// 3. Буквы и цифры сохраняем, дефисы и апострофы схлопываем в ничто
	//    ("semi-dry" -> "semidry", "don't" -> "dont"), прочие знаки заменяем пробелом
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case isWordJoiner(r):
		default:
			b.WriteRune(' ')
		}
	}

	// 4. Схлопываем серии пробелов и обрезаем края
	return strings.Join(strings.Fields(b.String()), " ")
}

// isWordJoiner сообщает, склеивает ли знак части одного слова
// Покрывает ASCII-дефис и апостроф вместе с их типографскими вариантами
func isWordJoiner(r rune) bool {
	switch r {
	case '-', '\'', '`', '‘', '’':
		return true
	}
	// юникодные дефисы и тире U+2010..U+2015
	return r >= '‐' && r <= '―'
}
