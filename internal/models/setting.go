package models

// AppSetting is a flat key/value configuration entry managed via the admin
// panel: bank details, company legal data, market price, feature toggles.
type AppSetting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex" json:"key"`
	Value string `json:"value"`
}

// Well-known setting keys.
const (
	SettingMarketPrice           = "market_price"
	SettingAutoOrderConfirmation = "auto_order_confirmation"
	SettingBankRecipient         = "bank_recipient"
	SettingBankIBAN              = "bank_iban"
	SettingBankBIC               = "bank_bic"
	SettingCompanyName           = "company_name"
	SettingCompanyEmail          = "company_email"
	SettingCompanyPhone          = "company_phone"
	SettingCompanyAddress        = "company_address"
	SettingCompanyCity           = "company_city"
	SettingCompanyCEO            = "company_ceo"
	SettingCompanyRegister       = "company_register"
	SettingCompanyTaxID          = "company_tax_id"
)
