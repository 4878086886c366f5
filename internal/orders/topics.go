package orders

import "strconv"

const TopicOrderCreated = "order.created"

// Partition key = order_id, supaya event 1 order maintain urutan.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
