package awsdynamo

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"

	"timeline/model"
)

type mockDynamo struct {
	dynamodbiface.DynamoDBAPI
	items       map[string]map[string]*dynamodb.AttributeValue
	tableExists bool
	created     *dynamodb.CreateTableInput
	waited      *dynamodb.DescribeTableInput
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (m *mockDynamo) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: m.items[*in.Key["slot"].S]}, nil
}

func (m *mockDynamo) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	m.items[*in.Item["slot"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamo) DescribeTableWithContext(ctx aws.Context, in *dynamodb.DescribeTableInput, _ ...request.Option) (*dynamodb.DescribeTableOutput, error) {
	if !m.tableExists {
		return nil, awserr.New(dynamodb.ErrCodeResourceNotFoundException, "no table", nil)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (m *mockDynamo) CreateTableWithContext(ctx aws.Context, in *dynamodb.CreateTableInput, _ ...request.Option) (*dynamodb.CreateTableOutput, error) {
	m.created = in
	m.tableExists = true
	return &dynamodb.CreateTableOutput{}, nil
}

func (m *mockDynamo) WaitUntilTableExistsWithContext(ctx aws.Context, in *dynamodb.DescribeTableInput, _ ...request.WaiterOption) error {
	m.waited = in
	return nil
}

func TestUnmarshalSlot(t *testing.T) {
	assert := assert.New(t)
	ts := time.Now()
	items := make(map[string]*dynamodb.AttributeValue)
	items["slot"] = &dynamodb.AttributeValue{S: aws.String("x_like_posts")}
	items["payload"] = &dynamodb.AttributeValue{S: aws.String(`[]`)}
	items["updated_at"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(ts.UnixMilli(), 10))}
	payload, err := unmarshalSlot(items)
	if err != nil {
		t.Fatalf("Error unmarshalling slot: %s", err)
	}
	assert.Equal("[]", string(payload))

	delete(items, "payload")
	_, err = unmarshalSlot(items)
	assert.Error(err)
}

func TestMarshalSlot(t *testing.T) {
	assert := assert.New(t)
	ts := time.Now().Add(-time.Hour)
	m := make(map[string]*dynamodb.AttributeValue)
	err := marshalSlot("x_like_posts", []byte(`[{"id":1}]`), ts, m)
	if err != nil {
		t.Fatalf("Error marshalling slot: %s", err)
	}
	assert.Equal("x_like_posts", *m["slot"].S)
	assert.Equal(`[{"id":1}]`, *m["payload"].S)
	assert.Equal(strconv.FormatInt(ts.UnixMilli(), 10), *m["updated_at"].N)

	assert.Error(marshalSlot("", nil, ts, m))
}

func TestSlotReadWrite(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	slot := NewSlot(newMockDynamo(), "", model.DefaultSlotKey)

	_, err := slot.Read(ctx)
	assert.ErrorIs(err, model.ErrNotFound)

	assert.NoError(slot.Write(ctx, []byte(`[]`)))
	payload, err := slot.Read(ctx)
	assert.NoError(err)
	assert.Equal(`[]`, string(payload))
}

func TestEnsureTable(t *testing.T) {
	assert := assert.New(t)
	db := newMockDynamo()
	slot := NewSlot(db, "posts", model.DefaultSlotKey)
	assert.NoError(slot.EnsureTable(context.Background()))
	if assert.NotNil(db.created) {
		assert.Equal("posts", *db.created.TableName)
		assert.Equal("slot", *db.created.KeySchema[0].AttributeName)
	}
	if assert.NotNil(db.waited, "must wait for the new table to become active") {
		assert.Equal("posts", *db.waited.TableName)
	}

	db.created, db.waited = nil, nil
	assert.NoError(slot.EnsureTable(context.Background()))
	assert.Nil(db.created, "existing table must not be recreated")
	assert.Nil(db.waited)
}

func TestSlotReadMalformedItem(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := newMockDynamo()
	db.items[model.DefaultSlotKey] = map[string]*dynamodb.AttributeValue{
		"slot":    {S: aws.String(model.DefaultSlotKey)},
		"payload": {N: aws.String("1")},
	}
	slot := NewSlot(db, "", model.DefaultSlotKey)

	_, err := slot.Read(ctx)
	assert.ErrorIs(err, model.ErrCorrupt)

	posts, err := model.NewStore(slot).Load(ctx)
	assert.NoError(err)
	assert.Len(posts, 2)
	assert.NotNil(db.items[model.DefaultSlotKey]["payload"].S, "seed posts replace the malformed item")
}
