package domain

// Contact is a single "contact us" message, keyed by phone number.
type Contact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PhoneNo string `json:"phone_no"`
	Message string `json:"message"`
}

// ContactUpdate is a full replacement of the mutable contact fields.
type ContactUpdate struct {
	Name    string
	Email   string
	Message string
}

// ContactPatch carries optional field replacements. A nil field was not
// supplied; a supplied-but-empty value is also treated as "leave as is"
// (preserved behavior of the shipped API).
type ContactPatch struct {
	Name    *string
	Email   *string
	Message *string
}

// CreateContactRequest binds the form fields of POST /api/contact-us/.
type CreateContactRequest struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	PhoneNo string `form:"phone_no" binding:"required"`
	Message string `form:"message" binding:"required"`
}

// UpdateContactRequest binds the form fields of PUT /api/contact-us/:phone_no.
type UpdateContactRequest struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required"`
}

// PatchContactRequest binds the optional form fields of PATCH /api/contact-us/:phone_no.
type PatchContactRequest struct {
	Name    *string `form:"name"`
	Email   *string `form:"email" binding:"omitempty,email"`
	Message *string `form:"message"`
}

// Patch converts the bound request into a repository patch.
func (r PatchContactRequest) Patch() ContactPatch {
	return ContactPatch{Name: r.Name, Email: r.Email, Message: r.Message}
}
