package phonenumber

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// PhoneNumber contains the metadata of a number
type PhoneNumber struct {
	RawNumber      string
	E164Format     string
	ISOCountryCode string
	RegionCode     string
	IsSipUser      bool
}

// NewPhoneNumber returns the PhoneNumber struct with the given Raw number
func NewPhoneNumber(number string) PhoneNumber {
	return PhoneNumber{
		RawNumber: strings.TrimSpace(number),
	}
}

// Parse fills the number's metadata. defaultRegion is used for numbers
// written without a country prefix.
func (pn *PhoneNumber) Parse(defaultRegion string) error {
	if pn.RawNumber == "" {
		return errors.New("Raw number is empty")
	}
	if err := pn.populateIsSIPUser(); err == nil {
		return nil
	}
	return pn.parseWithLibPhonenumber(defaultRegion)
}

func (pn *PhoneNumber) populateIsSIPUser() error {
	if !strings.HasPrefix(strings.ToLower(pn.RawNumber), "sip:") {
		return errors.New("Number is not a sip user")
	}
	pn.IsSipUser = true
	pn.E164Format = pn.RawNumber
	return nil
}

func (pn *PhoneNumber) parseWithLibPhonenumber(defaultRegion string) error {
	number, err := libphonenumber.Parse(pn.RawNumber, strings.ToUpper(defaultRegion))
	if err != nil {
		return err
	}
	pn.ISOCountryCode = strconv.Itoa(int(number.GetCountryCode()))
	pn.RegionCode = libphonenumber.GetRegionCodeForNumber(number)
	pn.E164Format = libphonenumber.Format(number, libphonenumber.E164)
	return nil
}

// Normalizer rewrites numbers to E.164 before they are sent upstream
type Normalizer struct {
	DefaultRegion string
}

// Normalize returns the E.164 form of raw, or the sip URI unchanged.
func (n Normalizer) Normalize(field, raw string) (string, error) {
	pn := NewPhoneNumber(raw)
	if err := pn.Parse(n.DefaultRegion); err != nil {
		return "", fmt.Errorf("%s %q is not a valid phone number: %v", field, raw, err)
	}
	return pn.E164Format, nil
}
