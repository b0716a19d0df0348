// Package asm implements a two-pass cross-assembler for the Intel 8080 instruction set.
//
// Each source line has the form:
//
//	LABEL:  MNEMONIC  OPERAND, OPERAND   ; comment
//
// A label starting in column one (with an optional trailing ':') binds the current program
// counter, an EQU value, or a SET value. Operands are expressions built from numeric literals
// (with B/Q/D/H radix suffixes and character literals), symbol references, the current-PC token
// '$', and operators (HIGH, LOW, unary +/-, NOT, + - * / MOD SHL SHR, the comparisons EQ/LT/LE/
// GT/GE/NE, and AND/OR/XOR), evaluated left to right except where parentheses group a
// sub-expression. See |Grammar| for the full EBNF.
//
// Directives supported: EQU, SET, ORG, DB, DW, DS, IF, ELSE, ENDIF, INCLUDE, MACRO/ENDM, END.
// Lines between MACRO and ENDM are captured verbatim on pass 1 and replayed, as if from an
// included file, on each invocation of the macro name.
//
// # Bugs
//
// Expressions have no operator precedence beyond explicit parentheses, matching the reference
// assembler this package's semantics are modeled on; this occasionally surprises newcomers who
// expect '*' to bind tighter than '+'.
package asm

// Grammar declares the syntax of an 8080 assembly source line in EBNF (with some liberties).
var Grammar = (`
program        = { line } ;

line           = ';' comment
               | label [ ':' ] [ keyword [ operand { ',' operand } ] ] [ ';' comment ] ;

comment        = { char } ;

keyword        = mnemonic
               | "EQU" | "SET" | "ORG" | "DB" | "DW" | "DS"
               | "IF" | "ELSE" | "ENDIF"
               | "INCLUDE" | "MACRO" | "ENDM" | "END" ;

mnemonic       = ident ;

ident          = \p{Letter} { identchar } ;

label          = [ '&' | '%' ] ident ;

identchar      = \p{Letter} | \p{Decimal Digits} | '_' | '?' | '.' ;

operand        = expr | string ;

string         = '"' { char } '"' | '\'' char '\'' ;

expr           = term { binop term } ;

term           = [ unop ] factor ;

factor         = number | char_literal | '$' | ident | '(' expr ')' ;

binop          = '+' | '-' | '*' | '/' | "MOD" | "SHL" | "SHR"
               | "EQ" | "LT" | "LE" | "GT" | "GE" | "NE"
               | "AND" | "OR" | "XOR" ;

unop           = '+' | '-' | "HIGH" | "LOW" | "NOT" ;

char_literal   = '\'' char ;

number         = digit { digit | letter } [ 'B' | 'Q' | 'D' | 'H' ] ;

digit          = '0' .. '9' ;
`)
