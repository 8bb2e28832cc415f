package format

// abnWeights are the ATO weighting factors for the 11 ABN digits
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// acnWeights are the ASIC weighting factors for the first 8 ACN digits
var acnWeights = [8]int{8, 7, 6, 5, 4, 3, 2, 1}

// ValidABN checks the ABN modulus 89 check.
// Separators are ignored; anything other than 11 digits is invalid.
func ValidABN(value string) bool {
	d := Digits(value)
	if len(d) != 11 {
		return false
	}

	sum := 0
	for i := 0; i < 11; i++ {
		n := int(d[i] - '0')
		if i == 0 {
			n--
		}
		sum += n * abnWeights[i]
	}
	return sum%89 == 0
}

// ValidACN checks the ACN modulus 10 check digit.
// Separators are ignored; anything other than 9 digits is invalid.
func ValidACN(value string) bool {
	d := Digits(value)
	if len(d) != 9 {
		return false
	}

	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(d[i]-'0') * acnWeights[i]
	}
	check := (10 - sum%10) % 10
	return check == int(d[8]-'0')
}
