package reconcile

// ConflictRecord pairs the local and remote snapshot of one row whose
// versions disagree. It only exists for the duration of a resolution.
type ConflictRecord struct {
	ID     string
	Kind   Kind
	Local  Entity
	Remote Entity
}

// NewConflictRecord validates the pair and builds the record. Equal versions
// yield ErrNoConflict.
func NewConflictRecord(kind Kind, local, remote Entity) (ConflictRecord, error) {
	rec := ConflictRecord{Kind: kind, Local: local, Remote: remote}
	if err := rec.Validate(); err != nil {
		return ConflictRecord{}, err
	}
	rec.ID = local.Metadata().ID
	if local.Metadata().VersionMillis() == remote.Metadata().VersionMillis() {
		return ConflictRecord{}, ErrNoConflict
	}
	return rec, nil
}

// Validate checks identity, tenant and, for known kinds, snapshot types.
// Unknown kinds pass so that Resolve can degrade to the remote version.
func (c ConflictRecord) Validate() error {
	if IsNil(c.Local) || IsNil(c.Remote) {
		return invalid(c.ID, "both local and remote snapshots are required")
	}
	lm, rm := c.Local.Metadata(), c.Remote.Metadata()
	if lm.ID == "" || rm.ID == "" {
		return invalid(c.ID, "missing identity")
	}
	if lm.ID != rm.ID {
		return invalid(c.ID, "identity mismatch between local "+lm.ID+" and remote "+rm.ID)
	}
	if c.ID != "" && c.ID != lm.ID {
		return invalid(c.ID, "record identity does not match snapshots")
	}
	if lm.OrganizationID == "" || lm.OrganizationID != rm.OrganizationID {
		return invalid(lm.ID, "organization mismatch")
	}
	if c.Kind.Valid() && (c.Local.Kind() != c.Kind || c.Remote.Kind() != c.Kind) {
		return invalid(lm.ID, "snapshot type does not match kind "+c.Kind.String())
	}
	return nil
}
