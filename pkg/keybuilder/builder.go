package keybuilder

import (
	"fmt"
)

const (
	Redis   string = "redis"
	Product string = "product"
)

func RedisProductKeyBuild(id string) string {
	return fmt.Sprintf("%s:%s:%s", Redis, Product, id)
}
