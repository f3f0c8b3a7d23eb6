package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBracket   Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectIdentifier  Code = 2005
	SynExpectRParen      Code = 2006
	SynTrailingInput     Code = 2007
	SynEmptyExpression   Code = 2008
	SynBadPathStep       Code = 2009

	// Конверсия (transpile)
	ConvInfo                Code = 3000
	ConvUnsupportedFunction Code = 3001
	ConvUnsupportedOperator Code = 3002
	ConvMalformedNode       Code = 3003
	ConvArityMismatch       Code = 3004
	ConvFellBack            Code = 3005

	// Валидация EM-выражений
	ValInfo                Code = 4000
	ValUnsupportedFunction Code = 4001
	ValUnbalancedParens    Code = 4002
	ValUnbalancedQuotes    Code = 4003
	ValUnbalancedBrackets  Code = 4004
	ValBadVariableName     Code = 4005
	ValUnknownOperator     Code = 4006

	// Ввод-вывод и служебные
	IOLoadFileError Code = 5001
	IOBadLogicFile  Code = 5002
	ObsTimings      Code = 5100
)

// ID returns the stable textual identifier of a code, e.g. "EMX3001".
func (c Code) ID() string {
	return fmt.Sprintf("EMX%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
