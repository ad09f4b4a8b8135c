// Package cache keeps the per-type sold-tickets counters in Redis so the
// sold-out gate is a single atomic round trip instead of a database count
// under load.
package cache

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/AreaFiftyLAN/landev/models"
)

var ctx = context.Background()

func MakeTicketSoldKey(typeID uint) string {
	return fmt.Sprintf("tickettype:%d:sold", typeID)
}

// reserveTicketScript increments the sold counter only while it stays at or
// below the limit. A limit of 0 means unlimited.
var reserveTicketScript = redis.NewScript(`
	-- KEYS[1] = tickettype:{id}:sold
	-- ARGV[1] = limit (0 = unlimited)

	local limit = tonumber(ARGV[1])
	local sold = tonumber(redis.call("GET", KEYS[1]) or "0")
	if limit > 0 and sold >= limit then
		return -1
	end
	return redis.call("INCR", KEYS[1])
`)

type TicketCounter struct {
	Client *redis.Client
}

func NewTicketCounter(addr string) *TicketCounter {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &TicketCounter{Client: client}
}

// Init seeds the counters from the authoritative database counts. Called
// once at startup so a restart never undersells or oversells.
func (c *TicketCounter) Init(soldByType map[uint]int64) error {
	for typeID, sold := range soldByType {
		if err := c.Client.Set(ctx, MakeTicketSoldKey(typeID), sold, 0).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Reserve claims one ticket of the given type. Returns
// models.ErrTicketLimitReached when the type is sold out.
func (c *TicketCounter) Reserve(typeID uint, limit int) error {
	res, err := reserveTicketScript.Run(ctx, c.Client, []string{MakeTicketSoldKey(typeID)}, limit).Int64()
	if err != nil {
		return err
	}
	if res == -1 {
		return models.ErrTicketLimitReached
	}
	return nil
}

// Release undoes a reservation after a failed order mutation.
func (c *TicketCounter) Release(typeID uint) error {
	return c.Client.Decr(ctx, MakeTicketSoldKey(typeID)).Err()
}

func (c *TicketCounter) Close() error {
	return c.Client.Close()
}
