package domain

import (
	"errors"
	"testing"
)

func TestPageRequest_Normalize_Defaults(t *testing.T) {
	p, err := PageRequest{}.Normalize()
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if p.Page != DefaultPage || p.PerPage != DefaultPerPage || p.Order != OrderAsc {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestPageRequest_Normalize_Rejects(t *testing.T) {
	cases := []PageRequest{
		{Page: -1},
		{PerPage: -5},
		{PerPage: MaxPerPage + 1},
		{Order: "sideways"},
	}
	for _, c := range cases {
		if _, err := c.Normalize(); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", c, err)
		}
	}
}

func TestPageRequest_Normalize_AcceptsMax(t *testing.T) {
	if _, err := (PageRequest{Page: 1, PerPage: MaxPerPage, Order: OrderDesc}).Normalize(); err != nil {
		t.Fatalf("expected max per_page to be accepted, got %v", err)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	if off, ok := (PageRequest{Page: 1, PerPage: 10}).Offset(); ok || off != 0 {
		t.Fatalf("first page must not apply an offset, got %d %v", off, ok)
	}
	if off, ok := (PageRequest{Page: 3, PerPage: 10}).Offset(); !ok || off != 20 {
		t.Fatalf("expected offset 20, got %d %v", off, ok)
	}
}

func TestNewPageResult(t *testing.T) {
	req := PageRequest{Page: 2, PerPage: 2, Order: OrderAsc}
	items := []Notification{{ID: 3}, {ID: 4}}

	res := NewPageResult(req, 5, items)
	if res.Total != 5 || res.Count != 2 || res.Page != 2 || res.Pages != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestNewPageResult_Empty(t *testing.T) {
	res := NewPageResult(PageRequest{Page: 1, PerPage: 50}, 0, nil)
	if res.Pages != 0 || res.Count != 0 || res.Total != 0 {
		t.Fatalf("unexpected empty result: %+v", res)
	}
	if res.Items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestNewPageResult_PastLastPage(t *testing.T) {
	res := NewPageResult(PageRequest{Page: 9, PerPage: 10}, 12, nil)
	if res.Count != 0 || res.Pages != 2 || res.Page != 9 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
