// Package basesvc - Test chuẩn hóa update document.
package basesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeUpdateFromUpdateData(t *testing.T) {
	doc, err := normalizeUpdate(&UpdateData{
		Set:   bson.M{"status": "contacted"},
		Unset: bson.M{"nextActionDate": ""},
	})
	if err != nil {
		t.Fatal(err)
	}

	set, ok := doc["$set"].(bson.M)
	if !ok {
		t.Fatalf("$set phải là bson.M, got %T", doc["$set"])
	}
	if set["status"] != "contacted" {
		t.Errorf("$set thiếu field của caller: %v", set)
	}
	if _, ok := set["updatedAt"]; !ok {
		t.Error("updatedAt phải luôn được gắn vào $set")
	}
	if _, ok := doc["$unset"]; !ok {
		t.Error("$unset của caller bị mất")
	}
}

func TestNormalizeUpdateFromBsonM(t *testing.T) {
	doc, err := normalizeUpdate(bson.M{"$set": bson.M{"priority": "high"}})
	if err != nil {
		t.Fatal(err)
	}
	set := doc["$set"].(bson.M)
	if set["priority"] != "high" {
		t.Errorf("$set gốc bị mất: %v", set)
	}
	if _, ok := set["updatedAt"]; !ok {
		t.Error("updatedAt phải được merge vào $set có sẵn")
	}
}

func TestNormalizeUpdateBsonMWithoutSet(t *testing.T) {
	doc, err := normalizeUpdate(bson.M{"$inc": bson.M{"count": 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["$inc"]; !ok {
		t.Error("toán tử khác $set phải giữ nguyên")
	}
	set, ok := doc["$set"].(bson.M)
	if !ok {
		t.Fatal("phải tự tạo $set để chứa updatedAt")
	}
	if _, ok := set["updatedAt"]; !ok {
		t.Error("updatedAt thiếu trong $set tự tạo")
	}
}

func TestNormalizeUpdateRejectsUnknownType(t *testing.T) {
	if _, err := normalizeUpdate("status=won"); err == nil {
		t.Fatal("kiểu update không hỗ trợ phải bị từ chối")
	}
}

func TestNormalizeUpdateDoesNotMutateInput(t *testing.T) {
	in := bson.M{"$set": bson.M{"a": 1}}
	if _, err := normalizeUpdate(in); err != nil {
		t.Fatal(err)
	}
	// Map lồng trong input vẫn bị chia sẻ, chỉ kiểm tra map ngoài
	if len(in) != 1 {
		t.Errorf("input map ngoài không được thêm key: %v", in)
	}
}
