package entities

// User is a directory record. Contact is the address notifications are sent
// to (a Discord user ID in the default deployment); empty means the user is
// not notifiable.
type User struct {
	ID          string
	DisplayName string
	Contact     string
}

// UserRef is a tagged reference to a User: either a bare identifier or an
// already-populated record. The two shapes appear interchangeably at the
// boundaries, so normalization lives here instead of being type-sniffed in
// business logic.
type UserRef struct {
	id   string
	user *User
}

// RefID builds a bare-identifier reference.
func RefID(id string) UserRef {
	return UserRef{id: id}
}

// RefUser builds a resolved reference. A nil user yields a zero reference.
func RefUser(u *User) UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{id: u.ID, user: u}
}

// UserID returns the referenced user's identifier regardless of shape.
// Empty means the participant references no user.
func (r UserRef) UserID() string {
	return r.id
}

// Resolved returns the embedded record when the reference carries one.
func (r UserRef) Resolved() (*User, bool) {
	return r.user, r.user != nil
}
