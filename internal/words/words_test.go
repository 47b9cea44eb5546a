package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPaise(t *testing.T) {
	tests := []struct {
		name  string
		paise int64
		want  string
	}{
		{
			name:  "Zero",
			paise: 0,
			want:  "zero rupees only",
		},
		{
			name:  "PaiseOnly",
			paise: 75,
			want:  "seventy-five paise only",
		},
		{
			name:  "OneRupee",
			paise: 100,
			want:  "one rupee only",
		},
		{
			name:  "OnePaisa",
			paise: 1,
			want:  "one paisa only",
		},
		{
			name:  "OneRupeeOnePaisa",
			paise: 101,
			want:  "one rupee and one paisa only",
		},
		{
			name:  "RupeesAndPaise",
			paise: 123456,
			want:  "one thousand two hundred thirty-four rupees and fifty-six paise only",
		},
		{
			name:  "Teens",
			paise: 1500,
			want:  "fifteen rupees only",
		},
		{
			name:  "RoundHundred",
			paise: 50000,
			want:  "five hundred rupees only",
		},
		{
			name:  "Lakh",
			paise: 1_00_000_00,
			want:  "one lakh rupees only",
		},
		{
			name:  "CroreWithParts",
			paise: 12_34_56_789_00,
			want:  "twelve crore thirty-four lakh fifty-six thousand seven hundred eighty-nine rupees only",
		},
		{
			name:  "HundredCrore",
			paise: 100_00_00_000_00,
			want:  "one hundred crore rupees only",
		},
		{
			name:  "Negative",
			paise: -4000,
			want:  "minus forty rupees only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPaise(tt.paise))
		})
	}
}
