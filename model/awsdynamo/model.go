package awsdynamo

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// DefaultTable is the table holding timeline slots.
const DefaultTable = "timeline"

// DynamoSlot stores the timeline payload as a single item keyed by slot
// name.
type DynamoSlot struct {
	db    dynamodbiface.DynamoDBAPI
	table string
	key   string
}

// NewSlotFromSession creates a slot using a DynamoDB client built from s.
func NewSlotFromSession(s *session.Session, table, key string) *DynamoSlot {
	return NewSlot(dynamodb.New(s), table, key)
}

// NewSlot creates a slot on an existing client.
func NewSlot(db dynamodbiface.DynamoDBAPI, table, key string) *DynamoSlot {
	if table == "" {
		table = DefaultTable
	}
	return &DynamoSlot{
		db:    db,
		table: table,
		key:   key,
	}
}
