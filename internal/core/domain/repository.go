package domain

import "context"

// ContactRepository defines data access for contact messages, keyed by
// phone number. Implementations return ErrDuplicateKey / ErrNotFound.
type ContactRepository interface {
	Insert(ctx context.Context, contact *Contact) (*Contact, error)
	Get(ctx context.Context, phoneNo string) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	Update(ctx context.Context, phoneNo string, upd ContactUpdate) (*Contact, error)
	Patch(ctx context.Context, phoneNo string, patch ContactPatch) (*Contact, error)
	Delete(ctx context.Context, phoneNo string) error
}

// ProfileRepository defines data access for personal-detail profiles,
// keyed by phone number. Photo file cleanup is the caller's concern;
// the repository only stores the path.
type ProfileRepository interface {
	Insert(ctx context.Context, profile *Profile) (*Profile, error)
	Get(ctx context.Context, phoneNo string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, phoneNo string, upd ProfileUpdate) (*Profile, error)
	Patch(ctx context.Context, phoneNo string, patch ProfilePatch) (*Profile, error)
	Delete(ctx context.Context, phoneNo string) error
}

// AccountRepository defines data access for user accounts. Insert
// enforces uniqueness of username, email, and phone number.
type AccountRepository interface {
	Insert(ctx context.Context, account *Account) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Delete(ctx context.Context, username string) error
}
