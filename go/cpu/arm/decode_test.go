package arm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lunixbochs/armor/go/cpu/arm"
)

func decode(word uint32) arm.Instruction {
	ins, ok := arm.Decode(word)
	ExpectWithOffset(1, ok).To(BeTrue(), "word 0x%08x should decode", word)
	return ins
}

func always(body arm.ConditionalBody) arm.Instruction {
	return arm.Conditional{Body: body, Cond: arm.AL}
}

var _ = Describe("Decoder", func() {
	Describe("Condition field", func() {
		It("decodes every condition but 0b1111", func() {
			for field := uint32(0); field < 15; field++ {
				ins := decode(field<<28 | 0x0a000000)
				Expect(ins.(arm.Conditional).Cond).To(Equal(arm.Condition(field)))
			}
		})

		It("rejects the unconditional space", func() {
			_, ok := arm.Decode(0xf0000000)
			Expect(ok).To(BeFalse())
			_, ok = arm.Decode(0xfa000000)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Branches", func() {
		// B #768 -> 0b1110_1010_000000000000000010111110
		It("should decode B with the pipeline adjusted offset", func() {
			Expect(decode(0xea0000be)).To(Equal(always(arm.B{Offset: 768})))
		})

		It("should sign extend backward offsets", func() {
			Expect(decode(0xeafffffe)).To(Equal(always(arm.B{Offset: 0})))
			Expect(decode(0xeafffffa)).To(Equal(always(arm.B{Offset: -16})))
		})

		It("should decode BL and conditional branches", func() {
			Expect(decode(0xeb000000)).To(Equal(always(arm.BL{Offset: 8})))
			Expect(decode(0x0a000001)).To(Equal(arm.Conditional{Body: arm.B{Offset: 12}, Cond: arm.EQ}))
		})

		It("should decode BX lr", func() {
			ins := decode(0xe12fff1e)
			Expect(ins).To(Equal(always(arm.BX{Rm: arm.LR})))
			Expect(ins.String()).To(Equal("bx lr"))
		})
	})

	Describe("Data processing", func() {
		It("should decode MOV r0, #1", func() {
			Expect(decode(0xe3a00001)).To(Equal(always(arm.DataProcessing{
				Op: arm.MOV, Rd: arm.R0, Operand: arm.Immediate{Value: 1},
			})))
		})

		It("should rotate immediates by twice the rotate field", func() {
			ins := decode(0xe3a01102)
			dp := ins.(arm.Conditional).Body.(arm.DataProcessing)
			Expect(dp.Operand).To(Equal(arm.Immediate{Value: 2, Rotate: 1}))
			Expect(dp.Operand.(arm.Immediate).Resolve()).To(Equal(uint32(0x80000000)))
			Expect(ins.String()).To(Equal("mov r1, #0x80000000"))
		})

		It("should decode SUBS, AND, ORR and BIC", func() {
			Expect(decode(0xe2501001)).To(Equal(always(arm.DataProcessing{
				Op: arm.SUB, S: true, Rd: arm.R1, Rn: arm.R0, Operand: arm.Immediate{Value: 1},
			})))
			Expect(decode(0xe20000ff).(arm.Conditional).Body.(arm.DataProcessing).Op).To(Equal(arm.AND))
			Expect(decode(0xe3800001).(arm.Conditional).Body.(arm.DataProcessing).Op).To(Equal(arm.ORR))
			Expect(decode(0xe3c00001).(arm.Conditional).Body.(arm.DataProcessing).Op).To(Equal(arm.BIC))
		})

		It("should decode TEQ without a destination", func() {
			ins := decode(0xe3300001)
			Expect(ins).To(Equal(always(arm.DataProcessing{
				Op: arm.TEQ, S: true, Rn: arm.R0, Operand: arm.Immediate{Value: 1},
			})))
			Expect(ins.String()).To(Equal("teq r0, #0x1"))
		})

		It("should put the condition before the s suffix", func() {
			Expect(decode(0x12500001).Mnemonic()).To(Equal("subnes"))
		})

		It("should decode shifted register operands", func() {
			Expect(decode(0xe1b00081).(arm.Conditional).Body.(arm.DataProcessing)).To(Equal(arm.DataProcessing{
				Op: arm.MOV, S: true, Rd: arm.R0,
				Operand: arm.ShiftedRegister{Rm: arm.R1, Kind: arm.LSL, Amount: 1},
			}))
			Expect(decode(0xe1a00211).(arm.Conditional).Body.(arm.DataProcessing).Operand).To(Equal(
				arm.RegisterShiftedRegister{Rm: arm.R1, Kind: arm.LSL, Rs: arm.R2}))
		})

		It("should give zero shift amounts their special meanings", func() {
			operand := func(word uint32) arm.Operand {
				return decode(word).(arm.Conditional).Body.(arm.DataProcessing).Operand
			}
			Expect(operand(0xe1a00001)).To(Equal(arm.ShiftedRegister{Rm: arm.R1, Kind: arm.LSL}))
			Expect(operand(0xe1a00021)).To(Equal(arm.ShiftedRegister{Rm: arm.R1, Kind: arm.LSR, Amount: 32}))
			Expect(operand(0xe1a00041)).To(Equal(arm.ShiftedRegister{Rm: arm.R1, Kind: arm.ASR, Amount: 32}))
			Expect(operand(0xe1a00061)).To(Equal(arm.ShiftedRegister{Rm: arm.R1, Kind: arm.RRX}))
		})

		It("should reject multiplies", func() {
			_, ok := arm.Decode(0xe0000091)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Status register transfers", func() {
		It("should decode MRS", func() {
			Expect(decode(0xe10f0000)).To(Equal(always(arm.MRS{Rd: arm.R0, PSR: arm.CPSR})))
			Expect(decode(0xe14f0000)).To(Equal(always(arm.MRS{Rd: arm.R0, PSR: arm.SPSR})))
		})

		It("should decode MSR field masks", func() {
			ins := decode(0xe129f000)
			msr := ins.(arm.Conditional).Body.(arm.MSR)
			Expect(msr).To(Equal(arm.MSR{PSR: arm.CPSR, C: true, F: true, Src: arm.ShiftedRegister{Rm: arm.R0}}))
			Expect(msr.Mask()).To(Equal(uint32(0xff0000ff)))
			Expect(ins.String()).To(Equal("msr cpsr_fc, r0"))
		})

		It("should decode MSR with an immediate", func() {
			msr := decode(0xe328f4f0).(arm.Conditional).Body.(arm.MSR)
			Expect(msr.Mask()).To(Equal(uint32(0xff000000)))
			Expect(msr.Src.(arm.Immediate).Resolve()).To(Equal(uint32(0xf0000000)))
		})
	})

	Describe("Load and store", func() {
		It("should decode pre-indexed LDR", func() {
			Expect(decode(0xe5910004)).To(Equal(always(arm.LDR{
				Rd: arm.R0,
				Addr: arm.AddressingOffset12{Addressing: arm.Addressing{
					Index: arm.PreIndex, Positive: true, Rn: arm.R1, Offset: arm.Immediate{Value: 4},
				}},
			})))
		})

		It("should decode post-indexed LDR", func() {
			ins := decode(0xe4910004)
			Expect(ins.(arm.Conditional).Body.(arm.LDR).Addr.Index).To(Equal(arm.PostIndex))
			Expect(ins.String()).To(Equal("ldr r0, [r1], #0x4"))
		})

		It("should decode writeback and negative offsets", func() {
			Expect(decode(0xe5a12004).String()).To(Equal("str r2, [r1, #0x4]!"))
			Expect(decode(0xe5514004).String()).To(Equal("ldrb r4, [r1, #-0x4]"))
		})

		It("should decode register offsets", func() {
			ldr := decode(0xe7910102).(arm.Conditional).Body.(arm.LDR)
			Expect(ldr.Addr.Offset).To(Equal(arm.ShiftedRegister{Rm: arm.R2, Kind: arm.LSL, Amount: 2}))
		})

		It("should decode halfword transfers", func() {
			Expect(decode(0xe1d000b0)).To(Equal(always(arm.HalfwordTransfer{
				Load: true, Half: true, Rd: arm.R0,
				Addr: arm.HalfwordOrSigned{Addressing: arm.Addressing{
					Index: arm.PreIndex, Positive: true, Rn: arm.R0, Offset: arm.Immediate{},
				}},
			})))
			Expect(decode(0xe1d010d2).Mnemonic()).To(Equal("ldrsb"))
		})

		It("should decode STMDB", func() {
			ins := decode(0xe92d4003)
			Expect(ins).To(Equal(always(arm.BlockTransfer{
				Before: true, Writeback: true, Rn: arm.SP, List: 0x4003,
			})))
			Expect(ins.String()).To(Equal("stmdb sp!, {r0, r1, lr}"))
		})
	})

	Describe("Coprocessor and software interrupt", func() {
		It("should decode MCR and MRC", func() {
			ins := decode(0xee010f10)
			Expect(ins).To(Equal(always(arm.MCR{CoprocTransfer: arm.CoprocTransfer{
				Coproc: 15, Rd: arm.R0, CRn: 1,
			}})))
			Expect(ins.String()).To(Equal("mcr p15, 0, r0, c1, c0, 0"))
			Expect(decode(0xee110f10).Mnemonic()).To(Equal("mrc"))
		})

		It("should reject CDP", func() {
			_, ok := arm.Decode(0xee000000)
			Expect(ok).To(BeFalse())
		})

		It("should decode SWI", func() {
			Expect(decode(0xef000042)).To(Equal(always(arm.SWI{Comment: 0x42})))
		})
	})
})
