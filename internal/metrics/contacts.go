package metrics

import "github.com/fynnbrem/homepage/internal/physics"

// Contacts is the mean number of ball-ball collisions per tick.
type Contacts struct {
	name    string
	sum     int
	last    int
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string {
	return c.name
}

// Observe runs before each step, so it picks up the contacts of the
// previous one through the running total.
func (c *Contacts) Observe(a *physics.Arena, t float64) {
	total := a.TotalContacts()
	if c.samples > 0 {
		c.sum += total - c.last
	}
	c.last = total
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples < 2 {
		return 0
	}
	return float64(c.sum) / float64(c.samples-1)
}

func (c *Contacts) Reset() {
	c.sum = 0
	c.last = 0
	c.samples = 0
}
