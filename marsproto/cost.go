package marsproto

// Cost is the aggregable retrieval-cost summary of spec §3: a layout
// ordinal, bytes held on-line/off-line, tape/disk file counts, field
// counts, and sets of media/nodes/libraries/damaged tapes touched while
// serving a request. Addition is componentwise for the counters and
// set-union for the string sets (original_source rules/Cost.cc,
// `Cost::operator+=`).
type Cost struct {
	Layout int64

	OnLineBytes  int64
	OffLineBytes int64

	Tapes        int64
	Disks        int64
	Unavailable  int64
	Offsite      int64
	OnLineFields int64

	OffLineFields int64

	Damaged   map[string]struct{}
	Media     map[string]struct{}
	Nodes     map[string]struct{}
	Libraries map[string]struct{}
}

// NewCost returns a zeroed Cost with its string sets ready to receive
// entries.
func NewCost() *Cost {
	return &Cost{
		Damaged:   make(map[string]struct{}),
		Media:     make(map[string]struct{}),
		Nodes:     make(map[string]struct{}),
		Libraries: make(map[string]struct{}),
	}
}

// Add accumulates other into c: integer fields add, string sets union.
func (c *Cost) Add(other *Cost) {
	c.Layout += other.Layout
	c.OnLineBytes += other.OnLineBytes
	c.OffLineBytes += other.OffLineBytes
	c.Tapes += other.Tapes
	c.Disks += other.Disks
	c.Unavailable += other.Unavailable
	c.Offsite += other.Offsite
	c.OnLineFields += other.OnLineFields
	c.OffLineFields += other.OffLineFields

	unionInto(c.Damaged, other.Damaged)
	unionInto(c.Media, other.Media)
	unionInto(c.Nodes, other.Nodes)
	unionInto(c.Libraries, other.Libraries)
}

func unionInto(dst, src map[string]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

// DamagedNames, MediaNames, NodeNames and LibraryNames return the set
// members as sorted-free slices (callers that need a stable order should
// sort the result themselves).
func (c *Cost) DamagedNames() []string { return keys(c.Damaged) }
func (c *Cost) MediaNames() []string   { return keys(c.Media) }
func (c *Cost) NodeNames() []string    { return keys(c.Nodes) }
func (c *Cost) LibraryNames() []string { return keys(c.Libraries) }

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
