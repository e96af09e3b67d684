package models

// Singleton setting document ids and their first-run defaults.
const (
	SettingOrderClosingTime = "orderClosingTime"
	SettingVendorPhone      = "vendorPhone"

	DefaultOrderClosingTime = "12:45"
	DefaultVendorPhone      = ""
)

// Setting is the shape of every document in the settings collection.
type Setting struct {
	Value string `json:"value"`
}

// SettingDefaults maps each known setting id to the value written on first read.
func SettingDefaults() map[string]string {
	return map[string]string{
		SettingOrderClosingTime: DefaultOrderClosingTime,
		SettingVendorPhone:      DefaultVendorPhone,
	}
}
