package profile

import (
	"testing"

	"herbsera/models"
)

func TestSetDefaultAddressSingleDefault(t *testing.T) {
	addresses := []models.Address{
		{AddressID: "a1", IsDefault: true},
		{AddressID: "a2"},
		{AddressID: "a3"},
	}

	addresses = SetDefaultAddress(addresses, "a3")

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			if a.AddressID != "a3" {
				t.Fatalf("expected a3 to be the default, got %s", a.AddressID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}
}

func TestSetDefaultAddressUnknownIDClearsAll(t *testing.T) {
	addresses := []models.Address{
		{AddressID: "a1", IsDefault: true},
	}

	addresses = SetDefaultAddress(addresses, "missing")

	if addresses[0].IsDefault {
		t.Fatal("expected no default when the id does not match")
	}
}
