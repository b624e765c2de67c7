package matching

import "strings"

// ContainerType тип тары сидра, закрытый набор вариантов
// Свободный текст приводится к варианту через ParseContainerType
type ContainerType string

const (
	ContainerUnknown  ContainerType = ""
	ContainerBottle   ContainerType = "bottle"
	ContainerCan      ContainerType = "can"
	ContainerKeg      ContainerType = "keg"
	ContainerBagInBox ContainerType = "bag_in_box"
	ContainerDraught  ContainerType = "draught"
	ContainerOther    ContainerType = "other"
)

// IsKnown сообщает, относится ли значение к распознанным вариантам тары
// ContainerOther не считается распознанным: два неопознанных значения
// ничего не говорят о совпадении физической тары
func (c ContainerType) IsKnown() bool {
	switch c {
	case ContainerBottle, ContainerCan, ContainerKeg, ContainerBagInBox, ContainerDraught:
		return true
	}
	return false
}

// ParseContainerType разбирает произвольную строку в тип тары
// Пустой вход дает ContainerUnknown, все нераспознанное уходит в ContainerOther
// Синонимы и уточнения объема складываются в канонический вариант:
// "330ml can" -> can, "Glass Bottle" -> bottle
func ParseContainerType(raw string) ContainerType {
	normalized := NewNormalizer().Normalize(raw)
	if normalized == "" {
		return ContainerUnknown
	}

	for _, token := range strings.Fields(normalized) {
		switch token {
		case "bottle", "bottles", "flasche":
			return ContainerBottle
		case "can", "cans", "tin":
			return ContainerCan
		case "keg", "minikeg", "cask":
			return ContainerKeg
		case "draught", "draft", "tap":
			return ContainerDraught
		}
	}

	// "bag-in-box" после нормализации склеивается в одно слово
	if strings.Contains(normalized, "baginbox") ||
		(strings.Contains(normalized, "bag") && strings.Contains(normalized, "box")) {
		return ContainerBagInBox
	}

	return ContainerOther
}

// Candidate поля записи сидра, участвующие в сравнении
// Неизменяемое значение: создается на один вызов и не мутируется
type Candidate struct {
	Name            string        `json:"name"`
	Brand           string        `json:"brand"`
	StrengthPercent *float64      `json:"strengthPercent,omitempty"`
	Container       ContainerType `json:"containerType,omitempty"`
}

// StoredCandidate кандидат из коллекции вместе с его идентификатором
type StoredCandidate struct {
	ID int64 `json:"id"`
	Candidate
}

// MatchField поле записи, участие которого учтено в оценке совпадения
type MatchField string

const (
	FieldName      MatchField = "name"
	FieldBrand     MatchField = "brand"
	FieldStrength  MatchField = "strength"
	FieldContainer MatchField = "container"
)
