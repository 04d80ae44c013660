package model

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the binary model format, a protocol buffer wire encoding equivalent to:
//
//	message Model {
//	  repeated Operand operands = 1;
//	  repeated Operation operations = 2;
//	  repeated int64 input_indexes = 3 [packed = true];
//	  repeated int64 output_indexes = 4 [packed = true];
//	  repeated bytes pools = 5;
//	}
//	message Operand {
//	  int32 type = 1;
//	  repeated int64 dimensions = 2 [packed = true];
//	  float scale = 3;
//	  sint32 zero_point = 4;
//	  int32 lifetime = 5;
//	  bytes data = 6;
//	  DataLocation location = 7;
//	}
//	message DataLocation {
//	  int64 pool_index = 1;
//	  int64 offset = 2;
//	  int64 length = 3;
//	}
//	message Operation {
//	  int32 type = 1;
//	  repeated int64 inputs = 2 [packed = true];
//	  repeated int64 outputs = 3 [packed = true];
//	}
const (
	fieldModelOperands      protowire.Number = 1
	fieldModelOperations    protowire.Number = 2
	fieldModelInputIndexes  protowire.Number = 3
	fieldModelOutputIndexes protowire.Number = 4
	fieldModelPools         protowire.Number = 5

	fieldOperandType       protowire.Number = 1
	fieldOperandDimensions protowire.Number = 2
	fieldOperandScale      protowire.Number = 3
	fieldOperandZeroPoint  protowire.Number = 4
	fieldOperandLifetime   protowire.Number = 5
	fieldOperandData       protowire.Number = 6
	fieldOperandLocation   protowire.Number = 7

	fieldLocationPoolIndex protowire.Number = 1
	fieldLocationOffset    protowire.Number = 2
	fieldLocationLength    protowire.Number = 3

	fieldOperationType    protowire.Number = 1
	fieldOperationInputs  protowire.Number = 2
	fieldOperationOutputs protowire.Number = 3
)

// MarshalBinary encodes the model in its binary format. It implements encoding.BinaryMarshaler.
func (m *Model) MarshalBinary() ([]byte, error) {
	var b []byte
	for i := range m.Operands {
		b = protowire.AppendTag(b, fieldModelOperands, protowire.BytesType)
		b = protowire.AppendBytes(b, appendOperand(nil, &m.Operands[i]))
	}
	for i := range m.Operations {
		b = protowire.AppendTag(b, fieldModelOperations, protowire.BytesType)
		b = protowire.AppendBytes(b, appendOperation(nil, &m.Operations[i]))
	}
	b = appendPackedInts(b, fieldModelInputIndexes, m.InputIndexes)
	b = appendPackedInts(b, fieldModelOutputIndexes, m.OutputIndexes)
	for _, pool := range m.Pools {
		b = protowire.AppendTag(b, fieldModelPools, protowire.BytesType)
		b = protowire.AppendBytes(b, pool)
	}
	return b, nil
}

// UnmarshalBinary decodes the model from its binary format, replacing its contents.
// It implements encoding.BinaryUnmarshaler.
func (m *Model) UnmarshalBinary(data []byte) error {
	*m = Model{}
	return consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldModelOperands:
			var operand Operand
			n, err := consumeSubMessage(typ, b, func(sub []byte) error { return unmarshalOperand(sub, &operand) })
			m.Operands = append(m.Operands, operand)
			return n, err
		case fieldModelOperations:
			var op Operation
			n, err := consumeSubMessage(typ, b, func(sub []byte) error { return unmarshalOperation(sub, &op) })
			m.Operations = append(m.Operations, op)
			return n, err
		case fieldModelInputIndexes:
			return consumeInts(typ, b, &m.InputIndexes)
		case fieldModelOutputIndexes:
			return consumeInts(typ, b, &m.OutputIndexes)
		case fieldModelPools:
			if typ != protowire.BytesType {
				return 0, errors.Wrapf(ErrInvalidModel, "memory pool encoded with wire type %d", typ)
			}
			pool, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			m.Pools = append(m.Pools, append([]byte(nil), pool...))
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// Unmarshal decodes a model in binary format, and validates its structure.
func Unmarshal(data []byte) (*Model, error) {
	m := &Model{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func appendOperand(b []byte, operand *Operand) []byte {
	b = appendVarintField(b, fieldOperandType, uint64(operand.Type))
	b = appendPackedInts(b, fieldOperandDimensions, operand.Dimensions)
	if operand.Scale != 0 {
		b = protowire.AppendTag(b, fieldOperandScale, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(operand.Scale))
	}
	b = appendVarintField(b, fieldOperandZeroPoint, protowire.EncodeZigZag(int64(operand.ZeroPoint)))
	b = appendVarintField(b, fieldOperandLifetime, uint64(operand.Lifetime))
	if len(operand.Data) > 0 {
		b = protowire.AppendTag(b, fieldOperandData, protowire.BytesType)
		b = protowire.AppendBytes(b, operand.Data)
	}
	if operand.Lifetime == ConstantReference {
		var location []byte
		location = appendVarintField(location, fieldLocationPoolIndex, uint64(operand.Location.PoolIndex))
		location = appendVarintField(location, fieldLocationOffset, uint64(operand.Location.Offset))
		location = appendVarintField(location, fieldLocationLength, uint64(operand.Location.Length))
		b = protowire.AppendTag(b, fieldOperandLocation, protowire.BytesType)
		b = protowire.AppendBytes(b, location)
	}
	return b
}

func unmarshalOperand(data []byte, operand *Operand) error {
	return consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldOperandType:
			return consumeVarint(typ, b, func(v uint64) { operand.Type = OperandType(v) })
		case fieldOperandDimensions:
			return consumeInts(typ, b, &operand.Dimensions)
		case fieldOperandScale:
			if typ != protowire.Fixed32Type {
				return 0, errors.Wrapf(ErrInvalidModel, "operand scale encoded with wire type %d", typ)
			}
			v, n := protowire.ConsumeFixed32(b)
			operand.Scale = math.Float32frombits(v)
			return n, nil
		case fieldOperandZeroPoint:
			return consumeVarint(typ, b, func(v uint64) { operand.ZeroPoint = int32(protowire.DecodeZigZag(v)) })
		case fieldOperandLifetime:
			return consumeVarint(typ, b, func(v uint64) { operand.Lifetime = Lifetime(v) })
		case fieldOperandData:
			if typ != protowire.BytesType {
				return 0, errors.Wrapf(ErrInvalidModel, "operand data encoded with wire type %d", typ)
			}
			v, n := protowire.ConsumeBytes(b)
			operand.Data = append([]byte(nil), v...)
			return n, nil
		case fieldOperandLocation:
			return consumeSubMessage(typ, b, func(sub []byte) error {
				return consumeMessage(sub, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
					switch num {
					case fieldLocationPoolIndex:
						return consumeVarint(typ, b, func(v uint64) { operand.Location.PoolIndex = int(v) })
					case fieldLocationOffset:
						return consumeVarint(typ, b, func(v uint64) { operand.Location.Offset = int(v) })
					case fieldLocationLength:
						return consumeVarint(typ, b, func(v uint64) { operand.Location.Length = int(v) })
					}
					return protowire.ConsumeFieldValue(num, typ, b), nil
				})
			})
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func appendOperation(b []byte, op *Operation) []byte {
	b = appendVarintField(b, fieldOperationType, uint64(op.Type))
	b = appendPackedInts(b, fieldOperationInputs, op.Inputs)
	b = appendPackedInts(b, fieldOperationOutputs, op.Outputs)
	return b
}

func unmarshalOperation(data []byte, op *Operation) error {
	return consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldOperationType:
			return consumeVarint(typ, b, func(v uint64) { op.Type = OperationType(v) })
		case fieldOperationInputs:
			return consumeInts(typ, b, &op.Inputs)
		case fieldOperationOutputs:
			return consumeInts(typ, b, &op.Outputs)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendPackedInts(b []byte, num protowire.Number, values []int) []byte {
	if len(values) == 0 {
		return b
	}
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

// consumeMessage iterates over the fields of a message. consumeField must return the number of bytes
// consumed of the field value, or a negative protowire error code.
func consumeMessage(data []byte, consumeField func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return errors.Wrapf(ErrInvalidModel, "%v", protowire.ParseError(n))
		}
		data = data[n:]
		n, err := consumeField(num, typ, data)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.Wrapf(ErrInvalidModel, "field %d: %v", num, protowire.ParseError(n))
		}
		data = data[n:]
	}
	return nil
}

func consumeSubMessage(typ protowire.Type, b []byte, unmarshal func(sub []byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, errors.Wrapf(ErrInvalidModel, "message encoded with wire type %d", typ)
	}
	sub, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, unmarshal(sub)
}

func consumeVarint(typ protowire.Type, b []byte, set func(v uint64)) (int, error) {
	if typ != protowire.VarintType {
		return 0, errors.Wrapf(ErrInvalidModel, "varint encoded with wire type %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		set(v)
	}
	return n, nil
}

// consumeInts accepts both packed and non-packed encodings of repeated integers.
func consumeInts(typ protowire.Type, b []byte, values *[]int) (int, error) {
	switch typ {
	case protowire.VarintType:
		return consumeVarint(typ, b, func(v uint64) { *values = append(*values, int(v)) })
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		for len(packed) > 0 {
			v, vn := protowire.ConsumeVarint(packed)
			if vn < 0 {
				return vn, nil
			}
			*values = append(*values, int(v))
			packed = packed[vn:]
		}
		return n, nil
	}
	return 0, errors.Wrapf(ErrInvalidModel, "repeated integers encoded with wire type %d", typ)
}
