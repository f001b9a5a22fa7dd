package awsdynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/sirupsen/logrus"

	"timeline/model"
)

var plog = logrus.WithFields(logrus.Fields{
	"env": "DynamoSlot",
})

func (ds *DynamoSlot) Read(ctx context.Context) ([]byte, error) {
	params := &dynamodb.GetItemInput{
		TableName: aws.String(ds.table),
		Key: map[string]*dynamodb.AttributeValue{
			"slot": { // Required
				S: aws.String(ds.key),
			},
		},
		ConsistentRead: aws.Bool(true),
	}
	resp, err := ds.db.GetItemWithContext(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Item) == 0 {
		return nil, model.ErrNotFound
	}
	payload, err := unmarshalSlot(resp.Item)
	if err != nil {
		plog.Warnf("Error unmarshal slot %q: %s", ds.key, err)
		return nil, fmt.Errorf("%w: %v", model.ErrCorrupt, err)
	}
	return payload, nil
}

func (ds *DynamoSlot) Write(ctx context.Context, payload []byte) error {
	items := make(map[string]*dynamodb.AttributeValue)
	if err := marshalSlot(ds.key, payload, time.Now(), items); err != nil {
		return err
	}
	params := &dynamodb.PutItemInput{
		Item:      items,
		TableName: aws.String(ds.table),
	}
	_, err := ds.db.PutItemWithContext(ctx, params)
	return err
}

// EnsureTable creates the slot table when it does not exist yet.
func (ds *DynamoSlot) EnsureTable(ctx context.Context) error {
	_, err := ds.db.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(ds.table),
	})
	if err == nil {
		return nil
	}
	var aerr awserr.Error
	if !errors.As(err, &aerr) || aerr.Code() != dynamodb.ErrCodeResourceNotFoundException {
		return err
	}
	plog.Infof("Creating table %q", ds.table)
	params := &dynamodb.CreateTableInput{
		TableName: aws.String(ds.table),
		KeySchema: []*dynamodb.KeySchemaElement{
			{ // Required
				AttributeName: aws.String("slot"),
				KeyType:       aws.String("HASH"),
			},
		},
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("slot"),
				AttributeType: aws.String("S"),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
	}
	if _, err := ds.db.CreateTableWithContext(ctx, params); err != nil {
		return err
	}
	// The table is CREATING until it turns ACTIVE; item calls fail before that.
	return ds.db.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(ds.table),
	})
}

func unmarshalSlot(items map[string]*dynamodb.AttributeValue) ([]byte, error) {
	v, ok := items["payload"]
	if !ok || v == nil || v.S == nil {
		return nil, errors.New("Field 'payload' nil")
	}
	if v, ok := items["updated_at"]; ok && v.N != nil {
		if _, err := strconv.ParseInt(*v.N, 10, 64); err != nil {
			plog.Warnf("Unable to parse 'updated_at' on %v: %s", items["slot"], err)
		}
	}
	return []byte(*v.S), nil
}

func marshalSlot(key string, payload []byte, at time.Time, items map[string]*dynamodb.AttributeValue) error {
	if key == "" {
		return fmt.Errorf("Undefined slot key")
	}
	items["slot"] = &dynamodb.AttributeValue{S: aws.String(key)}
	items["payload"] = &dynamodb.AttributeValue{S: aws.String(string(payload))}
	items["updated_at"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(at.UnixMilli(), 10))}
	return nil
}
