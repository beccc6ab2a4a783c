package domain

// Cookie is one session cookie captured during authentication. Field names
// follow the on-wire JSON used by import/export.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain,omitempty"`
	Path     string `json:"path,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Expires  string `json:"expires,omitempty"`
}

// Account is one stored credential set for the store backend. Email is the
// unique key; every store mutation addresses an account by email. The JSON
// tags define the import/export record format, so field order here is the
// field order of exported documents.
type Account struct {
	Email                       string   `json:"email"`
	Password                    string   `json:"password"`
	AppleID                     string   `json:"appleId"`
	Store                       string   `json:"store"`
	FirstName                   string   `json:"firstName"`
	LastName                    string   `json:"lastName"`
	PasswordToken               string   `json:"passwordToken"`
	DirectoryServicesIdentifier string   `json:"directoryServicesIdentifier"`
	Cookies                     []Cookie `json:"cookies"`
	DeviceIdentifier            string   `json:"deviceIdentifier"`
	Pod                         string   `json:"pod,omitempty"`
}

// DisplayName returns the identifier shown in lists: the Apple ID when set,
// otherwise the email.
func (a *Account) DisplayName() string {
	if a.AppleID != "" {
		return a.AppleID
	}
	return a.Email
}

// Usable reports whether the account carries enough state to authenticate.
// Password and device identifier must both be non-empty.
func (a *Account) Usable() bool {
	return a.Password != "" && a.DeviceIdentifier != ""
}

// Normalize fills derivable defaults in place: a missing appleId falls back
// to the email and a nil cookie list becomes an empty one, so a normalized
// account always serializes with "cookies": [].
func (a *Account) Normalize() {
	if a.AppleID == "" {
		a.AppleID = a.Email
	}
	if a.Cookies == nil {
		a.Cookies = []Cookie{}
	}
}
