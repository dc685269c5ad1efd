// Package idgen issues unique, time-ordered string identifiers for records
// created by backends without server-assigned identity.
package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

// Next returns the next snowflake ID as a decimal string. IDs are unique
// within a process and sort by creation time.
func Next() string {
	once.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		node = n
	})
	return node.Generate().String()
}
