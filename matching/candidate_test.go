package matching

import "testing"

// TestParseContainerType проверяет разбор свободного текста в тип тары
func TestParseContainerType(t *testing.T) {
	tests := []struct {
		input    string
		expected ContainerType
	}{
		{"", ContainerUnknown},
		{"   ", ContainerUnknown},
		{"bottle", ContainerBottle},
		{"Bottle", ContainerBottle},
		{"Glass Bottle", ContainerBottle},
		{"330ml can", ContainerCan},
		{"CAN", ContainerCan},
		{"tin", ContainerCan},
		{"keg", ContainerKeg},
		{"mini-keg", ContainerKeg},
		{"draught", ContainerDraught},
		{"draft", ContainerDraught},
		{"bag-in-box", ContainerBagInBox},
		{"Bag in Box 3L", ContainerBagInBox},
		{"amphora", ContainerOther},
		{"growler", ContainerOther},
	}

	for _, tt := range tests {
		result := ParseContainerType(tt.input)
		if result != tt.expected {
			t.Errorf("ParseContainerType(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

// TestContainerType_IsKnown проверяет границу распознанных вариантов
func TestContainerType_IsKnown(t *testing.T) {
	known := []ContainerType{ContainerBottle, ContainerCan, ContainerKeg, ContainerBagInBox, ContainerDraught}
	for _, c := range known {
		if !c.IsKnown() {
			t.Errorf("Expected %q to be known", c)
		}
	}

	for _, c := range []ContainerType{ContainerUnknown, ContainerOther} {
		if c.IsKnown() {
			t.Errorf("Expected %q to be unknown", c)
		}
	}
}
