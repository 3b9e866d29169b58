package entity

import "strconv"

// TriState is a three-valued scan result. Unknown means the answer was not
// computed because of a cost bound, never that an error occurred.
type TriState int8

const (
	// Unknown encodes to "-1" on the wire.
	Unknown TriState = -1
	// No encodes to "0" on the wire.
	No TriState = 0
	// Yes encodes to "1" on the wire.
	Yes TriState = 1
)

// Wire returns the protocol encoding of the tri-state.
func (t TriState) Wire() string {
	return strconv.Itoa(int(t))
}

// TriFromBool maps a definite scan outcome to Yes or No.
func TriFromBool(b bool) TriState {
	if b {
		return Yes
	}
	return No
}

// Request is one decoded frame from the client. The id is echoed back
// verbatim and may be empty; the path is not validated by the codec.
type Request struct {
	ID   string
	Path string
}

// Status is the full answer for one request. All fields after IsRepo are
// meaningful only when IsRepo is true; the encoder never serializes them
// otherwise.
type Status struct {
	ID             string
	IsRepo         bool
	Workdir        string
	HeadCommit     string
	LocalBranch    string
	UpstreamBranch string
	RemoteURL      string
	RepoState      string
	HasStaged      bool
	Unstaged       TriState
	Untracked      TriState
	Ahead          uint64
	Behind         uint64
	FirstTag       string
}

// NotARepo is the two-field answer for a path outside any repository.
func NotARepo(id string) *Status {
	return &Status{ID: id}
}

// WireFields returns the response fields in protocol order. A non-repo
// status yields exactly two fields; a repo status yields fifteen, with the
// workdir repeated as the final field.
func (s *Status) WireFields() []string {
	if !s.IsRepo {
		return []string{s.ID, "0"}
	}
	staged := "0"
	if s.HasStaged {
		staged = "1"
	}
	return []string{
		s.ID,
		"1",
		s.Workdir,
		s.HeadCommit,
		s.LocalBranch,
		s.UpstreamBranch,
		s.RemoteURL,
		s.RepoState,
		staged,
		s.Unstaged.Wire(),
		s.Untracked.Wire(),
		strconv.FormatUint(s.Ahead, 10),
		strconv.FormatUint(s.Behind, 10),
		s.FirstTag,
		s.Workdir,
	}
}
