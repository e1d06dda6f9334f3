package validate

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
)

// Errors 字段名 -> 违规消息列表
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Empty() bool { return len(e) == 0 }

// Rule 单条校验规则：返回违规消息，空串表示通过
type Rule func(value string) string

// Field 一个表单字段的有序规则链；命中第一条违规即停（同 zod 风格），
// 但不同字段之间不短路，一次提交收齐所有字段的问题
type Field struct {
	Name  string
	Rules []Rule
}

type Schema []Field

// Validate 对原始表单值逐字段求值，收集全部违规
func (s Schema) Validate(get func(name string) string) Errors {
	errs := Errors{}
	for _, f := range s {
		v := strings.TrimSpace(get(f.Name))
		for _, r := range f.Rules {
			if msg := r(v); msg != "" {
				errs.Add(f.Name, msg)
				break
			}
		}
	}
	return errs
}

func Required(msg string) Rule {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// GreaterThan 可转成有限数字且严格大于 min；
// NaN/Inf 和转不了数字视为同一违规（NaN 与任何数比较都是 false，不能只靠 n <= min 挡）
func GreaterThan(min float64, msg string) Rule {
	return func(v string) string {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= min {
			return msg
		}
		return ""
	}
}

// AtMost 有限数字且不超过 max
func AtMost(max float64, msg string) Rule {
	return func(v string) string {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || n > max {
			return msg
		}
		return ""
	}
}

func OneOf(msg string, allowed ...string) Rule {
	return func(v string) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return msg
	}
}

func Email(msg string) Rule {
	return func(v string) string {
		if v == "" {
			return msg
		}
		// mail.ParseAddress 会接受 "Name <a@b>"；这里只要裸地址
		a, err := mail.ParseAddress(v)
		if err != nil || a.Address != v {
			return msg
		}
		return ""
	}
}
